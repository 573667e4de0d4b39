package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// MaxPromptMetrics 提示词中最多嵌入的指标行数
	MaxPromptMetrics = 30

	notSpecified = "Not specified"
	noMetrics    = "No metrics available yet"
)

// SystemPrompt 补全请求的系统指令
const SystemPrompt = "You are a social media strategy expert for a marketing agency. " +
	"Respond with a single JSON object and follow the requested format exactly."

const styleRules = `Style rules (follow all of them):
- Address the reader as "you", never "y'all".
- Prefer the word "great" over "solid".
- Never put two emoji-only lines in a row.
- Every recommendation must cite an observed metric or a stated goal.`

// BuildPrompt 渲染报告提示词，相同输入总是得到相同输出
func BuildPrompt(t Type, tc TenantContext, metrics []MetricRow) (string, error) {
	k, ok := kinds[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownReportType, string(t))
	}

	var b strings.Builder
	b.WriteString(styleRules)
	b.WriteString("\n\nBusiness context:\n")
	writeField(&b, "Brand tone", tc.BrandTone)
	writeField(&b, "Goals", tc.Goals)
	writeField(&b, "Target audience", tc.TargetAudience)
	writeField(&b, "Competitors", strings.Join(tc.Competitors, ", "))
	writeField(&b, "Design style", tc.DesignStyle)

	b.WriteString("\nRecent performance (newest first):\n")
	rows := RecentMetrics(metrics, MaxPromptMetrics)
	if len(rows) == 0 {
		b.WriteString(noMetrics)
		b.WriteString("\n")
	}
	for _, m := range rows {
		fmt.Fprintf(&b, "- %s: followers=%d, likes=%d, comments=%d, reach=%d\n",
			m.Date.UTC().Format(time.DateOnly), m.Followers, m.Likes, m.Comments, m.Reach)
	}

	b.WriteString("\nReport type: ")
	b.WriteString(string(t))
	b.WriteString("\n")
	b.WriteString(k.instructions(tc))
	return b.String(), nil
}

// CorrectPrompt 在提示词末尾追加上一轮的校验错误
func CorrectPrompt(prompt string, errs []string) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nYour previous response did not match the required format:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("Fix every issue listed above and return the complete JSON object again.")
	return b.String()
}

// RecentMetrics 按日期倒序取最近 limit 行，不修改入参
func RecentMetrics(metrics []MetricRow, limit int) []MetricRow {
	rows := make([]MetricRow, len(metrics))
	copy(rows, metrics)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func writeField(b *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = notSpecified
	}
	b.WriteString("- ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
