package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const GenerationLogCollection = "report_generations"

const (
	TriggerUser = "user"
	TriggerCron = "cron"
)

const (
	OutcomeSuccess          = "success"
	OutcomeValidationFailed = "validation_failed"
	OutcomeTransportFailed  = "transport_failed"
	OutcomeError            = "error"
)

// GenerationLog 一次报告生成的完整过程
type GenerationLog struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectID  uint64               `bson:"project_id" json:"projectId"`
	ReportType string               `bson:"report_type" json:"reportType"`
	Trigger    string               `bson:"trigger" json:"trigger"`
	Subject    string               `bson:"subject,omitempty" json:"subject,omitempty"`
	Model      string               `bson:"model,omitempty" json:"model,omitempty"`
	Outcome    string               `bson:"outcome" json:"outcome"`
	ReportID   uint64               `bson:"report_id,omitempty" json:"reportId,omitempty"`
	Error      string               `bson:"error,omitempty" json:"error,omitempty"`
	Attempts   []*GenerationAttempt `bson:"attempts" json:"attempts"`
	CreatedAt  time.Time            `bson:"created_at" json:"createdAt"`
}

// GenerationAttempt 单次补全调用
type GenerationAttempt struct {
	Attempt   int      `bson:"attempt" json:"attempt"`
	Errors    []string `bson:"errors,omitempty" json:"errors,omitempty"`
	Error     string   `bson:"error,omitempty" json:"error,omitempty"`
	RawSize   int      `bson:"raw_size" json:"rawSize"`
	LatencyMs int64    `bson:"latency_ms" json:"latencyMs"`
}
