package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type 报告类型
type Type string

const (
	TypeWeeklyInsight  Type = "weekly_insight"
	TypeCaptionBatch   Type = "caption_batch"
	TypeHashtagList    Type = "hashtag_list"
	TypeCompetitorScan Type = "competitor_scan"
	TypeActionPlan     Type = "action_plan"
)

// Types 按固定顺序返回全部报告类型
func Types() []Type {
	return []Type{TypeWeeklyInsight, TypeCaptionBatch, TypeHashtagList, TypeCompetitorScan, TypeActionPlan}
}

var (
	ErrUnknownReportType   = errors.New("unknown report type")
	ErrCompletionTransport = errors.New("completion service failed")
)

// ValidationFailedError 重试耗尽后仍未通过结构校验
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("report failed validation after %d attempts: %s", MaxAttempts, strings.Join(e.Errors, "; "))
}

// ParseType 解析报告类型标签
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if _, ok := kinds[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownReportType, s)
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

// TenantContext 项目 onboarding 收集到的业务背景
type TenantContext struct {
	BrandTone      string
	Goals          string
	TargetAudience string
	Competitors    []string
	DesignStyle    string
}

// MetricRow 单日指标
type MetricRow struct {
	Date      time.Time
	Followers int
	Likes     int
	Comments  int
	Reach     int
}
