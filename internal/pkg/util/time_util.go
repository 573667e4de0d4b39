package util

import (
	"Pulse/internal/pkg/consts"
	"time"
)

// GetMidnight 返回 t 所在 UTC 日的零点
func GetMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseMetricDate 解析 YYYY-MM-DD，结果为 UTC 零点
func ParseMetricDate(s string) (time.Time, error) {
	return time.ParseInLocation(consts.MetricDateLayout, s, time.UTC)
}
