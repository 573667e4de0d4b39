package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultReportListLimit = 20
	MaxReportListLimit     = 100
)

type AiReportRepo interface {
	// InsertReport 追加一条报告，永不更新已有记录
	InsertReport(ctx context.Context, report *model.AiReport) (uint64, error)
	GetReportByID(ctx context.Context, id uint64) (*model.AiReport, error)
	// GetLatestReport created_at 最大的一条，不存在返回 nil
	GetLatestReport(ctx context.Context, projectID uint64, reportType string) (*model.AiReport, error)
	// ListReports 按创建时间倒序，reportType 为空时不过滤
	ListReports(ctx context.Context, projectID uint64, reportType string, limit int) ([]*model.AiReport, error)
	CountReportsSince(ctx context.Context, projectID uint64, reportType string, since time.Time) (int64, error)
}

type aiReportRepoImpl struct {
	db *gorm.DB
}

func NewAiReportRepo(db *gorm.DB) AiReportRepo {
	return &aiReportRepoImpl{db: db}
}

func (s *aiReportRepoImpl) InsertReport(ctx context.Context, report *model.AiReport) (uint64, error) {
	report.ID = 0
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return 0, err
	}
	return report.ID, nil
}

func (s *aiReportRepoImpl) GetReportByID(ctx context.Context, id uint64) (*model.AiReport, error) {
	var report model.AiReport
	err := s.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (s *aiReportRepoImpl) GetLatestReport(ctx context.Context, projectID uint64, reportType string) (*model.AiReport, error) {
	var report model.AiReport
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND report_type = ?", projectID, reportType).
		Order("created_at DESC").
		Order("id DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (s *aiReportRepoImpl) ListReports(ctx context.Context, projectID uint64, reportType string, limit int) ([]*model.AiReport, error) {
	if limit <= 0 {
		limit = DefaultReportListLimit
	}
	limit = min(limit, MaxReportListLimit)

	reports := make([]*model.AiReport, 0, limit)
	query := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// CountReportsSince 统计 since 之后 (含) 创建的报告数
func (s *aiReportRepoImpl) CountReportsSince(ctx context.Context, projectID uint64, reportType string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.AiReport{}).
		Where("project_id = ? AND report_type = ? AND created_at >= ?", projectID, reportType, since).
		Count(&count).Error
	return count, err
}
