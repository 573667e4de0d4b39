package model

import (
	"time"
)

// IgMetricDaily Instagram 每日指标快照，(project_id, metric_date) 唯一
type IgMetricDaily struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	ProjectID   uint64    `gorm:"not null;uniqueIndex:idx_project_date;column:project_id" json:"projectId"`
	MetricDate  time.Time `gorm:"not null;type:date;uniqueIndex:idx_project_date;column:metric_date" json:"metricDate"`
	Followers   int       `gorm:"not null;default:0;column:followers" json:"followers"`
	Likes       int       `gorm:"not null;default:0;column:likes" json:"likes"`
	Comments    int       `gorm:"not null;default:0;column:comments" json:"comments"`
	Reach       int       `gorm:"not null;default:0;column:reach" json:"reach"`
	Impressions int       `gorm:"not null;default:0;column:impressions" json:"impressions"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (IgMetricDaily) TableName() string {
	return "ig_metric_dailies"
}
