package es

import (
	"sort"
	"strings"
	"time"
)

// ReportES 写入 ES 的报告文档，content_text 为内容中全部文本拼接
type ReportES struct {
	ID          uint64    `json:"id"`
	ProjectID   uint64    `json:"project_id"`
	ReportType  string    `json:"report_type"`
	Score       int       `json:"score"`
	ContentText string    `json:"content_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlattenContent 深度优先收集内容里的字符串，对象按 key 排序保证稳定
func FlattenContent(content any) string {
	var parts []string
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				parts = append(parts, s)
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(val[k])
			}
		}
	}
	walk(content)
	return strings.Join(parts, "\n")
}
