package dto

import (
	"time"

	"github.com/goccy/go-json"
)

type GenerateReportDTO struct {
	ReportType string `json:"reportType" binding:"required"`
}

type GenerateResultDTO struct {
	Success  bool   `json:"success"`
	ReportID uint64 `json:"reportId"`
}

type ReportDTO struct {
	ID           uint64          `json:"id"`
	ProjectID    uint64          `json:"projectId"`
	ReportType   string          `json:"reportType"`
	Content      json.RawMessage `json:"content"`
	Score        int             `json:"score"`
	MetricsCount int             `json:"metricsCount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type RateLimitDTO struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	Quota     int       `json:"quota"`
	ResetAt   time.Time `json:"resetAt"`
}

type ReportSearchDTO struct {
	Keyword  string `form:"keyword" validate:"max=200"`
	Type     string `form:"type"`
	Page     int    `form:"page" validate:"gte=0"`
	PageSize int    `form:"pageSize" validate:"gte=0,lte=50"`
}

type ReportHitDTO struct {
	ID         uint64    `json:"id"`
	ReportType string    `json:"reportType"`
	Score      int       `json:"score"`
	Snippet    string    `json:"snippet"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReportSearchResultDTO struct {
	Total int64           `json:"total"`
	Items []*ReportHitDTO `json:"items"`
}

type ReportExportDTO struct {
	ObjectName string    `json:"objectName"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type GenerationAttemptDTO struct {
	Attempt   int      `json:"attempt"`
	Errors    []string `json:"errors,omitempty"`
	Error     string   `json:"error,omitempty"`
	LatencyMs int64    `json:"latencyMs"`
}

type GenerationLogDTO struct {
	ID         string                  `json:"id"`
	ReportType string                  `json:"reportType"`
	Trigger    string                  `json:"trigger"`
	Outcome    string                  `json:"outcome"`
	ReportID   uint64                  `json:"reportId,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Attempts   []*GenerationAttemptDTO `json:"attempts"`
	CreatedAt  time.Time               `json:"createdAt"`
}
