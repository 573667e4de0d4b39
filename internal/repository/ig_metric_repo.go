package repository

import (
	"Pulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IgMetricRepo interface {
	SaveOrUpdateMetrics(ctx context.Context, metrics []*model.IgMetricDaily) error
	GetRecentMetrics(ctx context.Context, projectID uint64, limit int) ([]*model.IgMetricDaily, error)
	GetMetricsSince(ctx context.Context, projectID uint64, since time.Time) ([]*model.IgMetricDaily, error)
}

type igMetricRepoImpl struct {
	db *gorm.DB
}

func NewIgMetricRepo(db *gorm.DB) IgMetricRepo {
	return &igMetricRepoImpl{db: db}
}

// SaveOrUpdateMetrics 按 (project_id, metric_date) 覆盖写入
func (s *igMetricRepoImpl) SaveOrUpdateMetrics(ctx context.Context, metrics []*model.IgMetricDaily) error {
	if len(metrics) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"followers",
			"likes",
			"comments",
			"reach",
			"impressions",
			"updated_at",
		}),
	}).Create(&metrics).Error
}

// GetRecentMetrics 最近 limit 天的指标，日期倒序
func (s *igMetricRepoImpl) GetRecentMetrics(ctx context.Context, projectID uint64, limit int) ([]*model.IgMetricDaily, error) {
	metrics := make([]*model.IgMetricDaily, 0, limit)
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("metric_date DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}

func (s *igMetricRepoImpl) GetMetricsSince(ctx context.Context, projectID uint64, since time.Time) ([]*model.IgMetricDaily, error) {
	metrics := make([]*model.IgMetricDaily, 0)
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND metric_date >= ?", projectID, since).
		Order("metric_date ASC").
		Find(&metrics).Error
	return metrics, err
}
