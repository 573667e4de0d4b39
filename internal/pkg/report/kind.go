package report

import (
	"fmt"
	"strings"
)

// kind 单个报告类型的提示词片段、结构校验与完整度规则
type kind struct {
	instructions func(tc TenantContext) string
	validate     func(content map[string]any) []string
	complete     func(content map[string]any) bool
}

const (
	weeklyMinActions = 3
	weeklyMaxActions = 5
	captionCount     = 10
	hashtagTierSize  = 10
	planMinTasks     = 5
	planMaxTasks     = 7
)

var hashtagTiers = []string{"broad", "mid", "niche"}

var kinds = map[Type]kind{
	TypeWeeklyInsight: {
		instructions: func(TenantContext) string {
			return fmt.Sprintf(`Write a weekly performance insight.
Return JSON in exactly this format:
{"summary": "string", "why": "string", "actions": [{"priority": "high|medium|low", "action": "string", "reason": "string"}]}
Include between %d and %d actions.`, weeklyMinActions, weeklyMaxActions)
		},
		validate: func(c map[string]any) []string {
			var errs []string
			if !isString(c["summary"]) {
				errs = append(errs, "Missing summary")
			}
			if !isString(c["why"]) {
				errs = append(errs, "Missing why")
			}
			actions, ok := c["actions"].([]any)
			if !ok {
				errs = append(errs, "Missing actions array")
			} else if len(actions) < weeklyMinActions {
				errs = append(errs, fmt.Sprintf("Must have at least %d actions", weeklyMinActions))
			}
			return errs
		},
		complete: func(c map[string]any) bool {
			return arrayLen(c["actions"]) >= weeklyMinActions
		},
	},
	TypeCaptionBatch: {
		instructions: func(TenantContext) string {
			return fmt.Sprintf(`Write a batch of Instagram captions.
Return JSON in exactly this format:
{"captions": [{"hook": "string", "body": "string", "cta": "string"}]}
Return exactly %d captions.`, captionCount)
		},
		validate: func(c map[string]any) []string {
			captions, ok := c["captions"].([]any)
			if !ok {
				return []string{"Missing captions array"}
			}
			var errs []string
			if len(captions) != captionCount {
				errs = append(errs, fmt.Sprintf("Must have exactly %d captions", captionCount))
			}
			for i, item := range captions {
				caption, ok := item.(map[string]any)
				if !ok {
					errs = append(errs, fmt.Sprintf("Caption %d must be an object", i+1))
					continue
				}
				for _, field := range []string{"hook", "body", "cta"} {
					if !isNonEmptyString(caption[field]) {
						errs = append(errs, fmt.Sprintf("Caption %d missing %s", i+1, field))
					}
				}
			}
			return errs
		},
		complete: func(c map[string]any) bool {
			return arrayLen(c["captions"]) == captionCount
		},
	},
	TypeHashtagList: {
		instructions: func(TenantContext) string {
			return fmt.Sprintf(`Build a tiered hashtag list.
Return JSON in exactly this format:
{"broad": ["string"], "mid": ["string"], "niche": ["string"]}
Each tier must contain exactly %d hashtags. Do not repeat a hashtag within a tier or across tiers.`, hashtagTierSize)
		},
		validate: func(c map[string]any) []string {
			var errs []string
			for _, tier := range hashtagTiers {
				tags, ok := c[tier].([]any)
				if !ok {
					errs = append(errs, fmt.Sprintf("Missing %s hashtags", tier))
					continue
				}
				if len(tags) != hashtagTierSize {
					errs = append(errs, fmt.Sprintf("Must have exactly %d %s hashtags", hashtagTierSize, tier))
				}
			}
			return errs
		},
		complete: func(c map[string]any) bool {
			for _, tier := range hashtagTiers {
				if arrayLen(c[tier]) != hashtagTierSize {
					return false
				}
			}
			return true
		},
	},
	TypeCompetitorScan: {
		instructions: func(tc TenantContext) string {
			var b strings.Builder
			b.WriteString(`Scan the competitors listed in the business context.
Return JSON in exactly this format:
{"competitors": [{"handle": "string", "postingFrequency": "string", "avgEngagement": 0, "themes": ["string"]}]}
`)
			if len(tc.Competitors) == 0 {
				b.WriteString("No competitors were provided, so return an empty competitors array.")
			} else {
				b.WriteString("Return one entry per competitor, in this order: ")
				b.WriteString(strings.Join(tc.Competitors, ", "))
				b.WriteString(".")
			}
			return b.String()
		},
		validate: func(c map[string]any) []string {
			if _, ok := c["competitors"].([]any); !ok {
				return []string{"Missing competitors array"}
			}
			return nil
		},
		complete: func(c map[string]any) bool {
			return arrayLen(c["competitors"]) > 0
		},
	},
	TypeActionPlan: {
		instructions: func(TenantContext) string {
			return fmt.Sprintf(`Write a prioritized action plan.
Return JSON in exactly this format:
{"tasks": [{"task": "string", "priority": "high|medium|low", "effort": "low|medium|high", "reason": "string"}]}
Include between %d and %d tasks.`, planMinTasks, planMaxTasks)
		},
		validate: func(c map[string]any) []string {
			tasks, ok := c["tasks"].([]any)
			if !ok {
				return []string{"Missing tasks array"}
			}
			if len(tasks) < planMinTasks {
				return []string{fmt.Sprintf("Must have at least %d tasks", planMinTasks)}
			}
			return nil
		},
		complete: func(c map[string]any) bool {
			return arrayLen(c["tasks"]) >= planMinTasks
		},
	},
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func arrayLen(v any) int {
	arr, ok := v.([]any)
	if !ok {
		return -1
	}
	return len(arr)
}
