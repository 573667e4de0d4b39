package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captions(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{
			"hook": fmt.Sprintf("hook %d", i),
			"body": fmt.Sprintf("body %d", i),
			"cta":  "Shop now",
		}
	}
	return out
}

func strs(n int, prefix string) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = fmt.Sprintf("#%s%d", prefix, i)
	}
	return out
}

func items(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"task": fmt.Sprintf("task %d", i)}
	}
	return out
}

func TestValidate_CaptionBatch(t *testing.T) {
	res := Validate(TypeCaptionBatch, map[string]any{"captions": captions(10)})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	res = Validate(TypeCaptionBatch, map[string]any{"captions": captions(9)})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Must have exactly 10 captions"}, res.Errors)
}

func TestValidate_CaptionBatchItems(t *testing.T) {
	c := captions(10)
	c[2] = map[string]any{"hook": "h", "body": ""}
	c[5] = "not an object"

	res := Validate(TypeCaptionBatch, map[string]any{"captions": c})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Caption 3 missing body",
		"Caption 3 missing cta",
		"Caption 6 must be an object",
	}, res.Errors)
}

func TestValidate_HashtagList(t *testing.T) {
	res := Validate(TypeHashtagList, map[string]any{
		"broad": strs(10, "b"),
		"mid":   strs(10, "m"),
		"niche": strs(10, "n"),
	})
	assert.True(t, res.Valid)

	res = Validate(TypeHashtagList, map[string]any{
		"broad": strs(10, "b"),
		"mid":   strs(8, "m"),
		"niche": strs(11, "n"),
	})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Must have exactly 10 mid hashtags",
		"Must have exactly 10 niche hashtags",
	}, res.Errors)

	res = Validate(TypeHashtagList, map[string]any{"mid": strs(10, "m"), "niche": strs(10, "n")})
	assert.Equal(t, []string{"Missing broad hashtags"}, res.Errors)
}

func TestValidate_WeeklyInsight(t *testing.T) {
	res := Validate(TypeWeeklyInsight, map[string]any{
		"summary": "Reach grew",
		"why":     "Reels",
		"actions": items(3),
	})
	assert.True(t, res.Valid)

	res = Validate(TypeWeeklyInsight, map[string]any{"actions": items(2)})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Missing summary", "Missing why", "Must have at least 3 actions"}, res.Errors)
}

func TestValidate_ActionPlan(t *testing.T) {
	assert.True(t, Validate(TypeActionPlan, map[string]any{"tasks": items(5)}).Valid)
	assert.Equal(t, []string{"Must have at least 5 tasks"}, Validate(TypeActionPlan, map[string]any{"tasks": items(4)}).Errors)
	assert.Equal(t, []string{"Missing tasks array"}, Validate(TypeActionPlan, map[string]any{"tasks": "nope"}).Errors)
}

func TestValidate_CompetitorScan(t *testing.T) {
	assert.True(t, Validate(TypeCompetitorScan, map[string]any{"competitors": []any{}}).Valid)
	assert.Equal(t, []string{"Missing competitors array"}, Validate(TypeCompetitorScan, map[string]any{}).Errors)
}

func TestValidate_NeverPanics(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{},
		{"captions": nil},
		{"captions": []any{nil, 1, "x"}},
		{"broad": map[string]any{}},
		{"actions": 3},
	}
	for _, typ := range append(Types(), Type("bogus")) {
		for _, in := range inputs {
			assert.NotPanics(t, func() {
				res := Validate(typ, in)
				if !res.Valid {
					assert.NotEmpty(t, res.Errors)
				}
			})
		}
	}
}
