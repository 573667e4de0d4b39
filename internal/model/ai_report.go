package model

import (
	"time"

	"gorm.io/datatypes"
)

// AiReport AI 生成的报告，只追加不修改，最新一份按 created_at 计算
type AiReport struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"id"`
	ProjectID    uint64         `gorm:"not null;index:idx_project_type_created,priority:1;column:project_id" json:"projectId"`
	ReportType   string         `gorm:"not null;size:32;index:idx_project_type_created,priority:2;column:report_type" json:"reportType"`
	Content      datatypes.JSON `gorm:"column:content" json:"content"`
	Score        int            `gorm:"not null;default:0;column:score" json:"score"`
	OnboardingID uint64         `gorm:"column:onboarding_id" json:"onboardingId"`
	MetricsCount int            `gorm:"not null;default:0;column:metrics_count" json:"metricsCount"`
	CreatedAt    time.Time      `gorm:"index:idx_project_type_created,priority:3;column:created_at" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

func (AiReport) TableName() string {
	return "ai_reports"
}
