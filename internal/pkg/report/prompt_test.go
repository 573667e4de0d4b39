package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	tc := TenantContext{
		BrandTone:   "playful",
		Goals:       "grow leads",
		Competitors: []string{"@rival", "@other"},
	}
	metrics := []MetricRow{
		{Date: day(1), Followers: 100, Likes: 10, Comments: 1, Reach: 500},
		{Date: day(3), Followers: 120, Likes: 12, Comments: 2, Reach: 700},
		{Date: day(2), Followers: 110, Likes: 11, Comments: 3, Reach: 600},
	}

	for _, typ := range Types() {
		first, err := BuildPrompt(typ, tc, metrics)
		require.NoError(t, err)
		second, err := BuildPrompt(typ, tc, metrics)
		require.NoError(t, err)
		assert.Equal(t, first, second, typ)
		assert.Contains(t, first, "Report type: "+string(typ))
	}
}

func TestBuildPrompt_Content(t *testing.T) {
	tc := TenantContext{Goals: "grow leads", Competitors: []string{"@rival"}}
	metrics := []MetricRow{
		{Date: day(1), Followers: 100, Likes: 10, Comments: 1, Reach: 500},
		{Date: day(3), Followers: 120, Likes: 12, Comments: 2, Reach: 700},
	}

	prompt, err := BuildPrompt(TypeCompetitorScan, tc, metrics)
	require.NoError(t, err)

	assert.Contains(t, prompt, `Address the reader as "you", never "y'all".`)
	assert.Contains(t, prompt, `Prefer the word "great" over "solid".`)
	assert.Contains(t, prompt, "- Goals: grow leads\n")
	assert.Contains(t, prompt, "- Brand tone: Not specified\n")
	assert.Contains(t, prompt, "- Target audience: Not specified\n")
	assert.Contains(t, prompt, "- Design style: Not specified\n")
	assert.Contains(t, prompt, "- Competitors: @rival\n")
	assert.Contains(t, prompt, "in this order: @rival.")
	assert.NotContains(t, prompt, noMetrics)

	newer := strings.Index(prompt, "- 2024-05-03: followers=120, likes=12, comments=2, reach=700")
	older := strings.Index(prompt, "- 2024-05-01: followers=100, likes=10, comments=1, reach=500")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)
}

func TestBuildPrompt_NoMetrics(t *testing.T) {
	prompt, err := BuildPrompt(TypeWeeklyInsight, TenantContext{}, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "No metrics available yet")
	assert.Equal(t, 5, strings.Count(prompt, "Not specified"))
}

func TestBuildPrompt_MetricsCapped(t *testing.T) {
	metrics := make([]MetricRow, 0, 40)
	start := day(1)
	for i := 0; i < 40; i++ {
		metrics = append(metrics, MetricRow{Date: start.AddDate(0, 0, i), Followers: i})
	}

	prompt, err := BuildPrompt(TypeActionPlan, TenantContext{}, metrics)
	require.NoError(t, err)
	assert.Equal(t, MaxPromptMetrics, strings.Count(prompt, "followers="))
	// 最旧的 10 行被丢弃
	assert.NotContains(t, prompt, start.Format(time.DateOnly))
	assert.Contains(t, prompt, start.AddDate(0, 0, 39).Format(time.DateOnly))
	assert.Equal(t, day(1), metrics[0].Date, "input must not be reordered")
}

func TestBuildPrompt_UnknownType(t *testing.T) {
	_, err := BuildPrompt(Type("newsletter"), TenantContext{}, nil)
	assert.True(t, errors.Is(err, ErrUnknownReportType))
}

func TestCorrectPrompt(t *testing.T) {
	base := "BASE"
	once := CorrectPrompt(base, []string{"Must have exactly 10 captions"})
	assert.True(t, strings.HasPrefix(once, base))
	assert.Contains(t, once, "- Must have exactly 10 captions\n")

	twice := CorrectPrompt(once, []string{"Caption 4 missing cta"})
	assert.True(t, strings.HasPrefix(twice, once))
	assert.Contains(t, twice, "- Caption 4 missing cta\n")
	assert.Equal(t, "BASE", base)
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("WEEKLY_INSIGHT")
	assert.ErrorIs(t, err, ErrUnknownReportType)
}
