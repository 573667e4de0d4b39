package report

import "time"

const (
	PlanTrial      = "trial"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// 每个 (项目, 报告类型) 每个自然日 (UTC) 的生成额度
var planQuotas = map[string]int{
	PlanTrial:      2,
	PlanPro:        5,
	PlanEnterprise: 20,
}

// RateLimit 额度检查结果
type RateLimit struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	Quota     int       `json:"quota"`
	ResetAt   time.Time `json:"resetAt"`
}

// Quota 返回套餐额度，未知套餐按 trial 处理
func Quota(plan string) int {
	if q, ok := planQuotas[plan]; ok {
		return q
	}
	return planQuotas[PlanTrial]
}

// ValidPlan 判断套餐是否已知
func ValidPlan(plan string) bool {
	_, ok := planQuotas[plan]
	return ok
}

// DayStart 返回 now 所在 UTC 自然日的零点
func DayStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EvaluateRateLimit 根据当日已用次数计算剩余额度
func EvaluateRateLimit(plan string, used int64, now time.Time) RateLimit {
	quota := Quota(plan)
	used = max(used, 0)
	remaining := quota - int(min(used, int64(quota)))
	return RateLimit{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Quota:     quota,
		ResetAt:   DayStart(now).Add(24 * time.Hour),
	}
}
