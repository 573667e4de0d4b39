package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

const (
	DefaultMetricDays = 30
	MaxMetricDays     = 365
)

type MetricService interface {
	// UpsertMetrics 按日期批量写入指标，同日重复写入覆盖
	UpsertMetrics(ctx context.Context, subject string, projectID uint64, in *dto.MetricBatchDTO) (int, error)
	// GetRecentMetrics 最近 days 天的指标，日期升序
	GetRecentMetrics(ctx context.Context, subject string, projectID uint64, days int) ([]*dto.MetricDTO, error)
	// SaveDailyMetrics 后台写入 (定时同步)，不校验调用方
	SaveDailyMetrics(ctx context.Context, projectID uint64, metrics []dto.MetricDTO) (int, error)
	// IngestForIgUser 按 igUserId 找到项目后写入 (webhook 消费)
	IngestForIgUser(ctx context.Context, igUserID string, metrics []dto.MetricDTO) (int, error)
}

type metricServiceImpl struct {
	projectRepo repository.ProjectRepo
	metricRepo  repository.IgMetricRepo
	now         func() time.Time
}

func NewMetricService(projectRepo repository.ProjectRepo, metricRepo repository.IgMetricRepo) MetricService {
	return &metricServiceImpl{
		projectRepo: projectRepo,
		metricRepo:  metricRepo,
		now:         time.Now,
	}
}

func (s *metricServiceImpl) UpsertMetrics(ctx context.Context, subject string, projectID uint64, in *dto.MetricBatchDTO) (int, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return 0, err
	}
	if err := util.ValidateDTO(in); err != nil {
		return 0, ErrParamInvalid
	}
	return s.SaveDailyMetrics(ctx, projectID, in.Metrics)
}

func (s *metricServiceImpl) GetRecentMetrics(ctx context.Context, subject string, projectID uint64, days int) ([]*dto.MetricDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultMetricDays
	}
	days = min(days, MaxMetricDays)

	since := util.GetMidnight(s.now()).AddDate(0, 0, -(days - 1))
	rows, err := s.metricRepo.GetMetricsSince(ctx, projectID, since)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MetricDTO, 0, len(rows))
	for _, r := range rows {
		var d dto.MetricDTO
		if err = copier.Copy(&d, r); err != nil {
			return nil, err
		}
		d.Date = r.MetricDate.UTC().Format(consts.MetricDateLayout)
		res = append(res, &d)
	}
	return res, nil
}

func (s *metricServiceImpl) SaveDailyMetrics(ctx context.Context, projectID uint64, metrics []dto.MetricDTO) (int, error) {
	rows, err := toMetricRows(projectID, metrics)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err = s.metricRepo.SaveOrUpdateMetrics(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *metricServiceImpl) IngestForIgUser(ctx context.Context, igUserID string, metrics []dto.MetricDTO) (int, error) {
	project, err := s.projectRepo.GetProjectByIgUserID(ctx, igUserID)
	if err != nil {
		return 0, err
	}
	if project == nil {
		return 0, ErrUnknownIgAccount
	}
	return s.SaveDailyMetrics(ctx, project.ID, metrics)
}

// toMetricRows 转换并按日期去重，同一日期以最后一条为准
func toMetricRows(projectID uint64, metrics []dto.MetricDTO) ([]*model.IgMetricDaily, error) {
	byDate := make(map[string]int, len(metrics))
	rows := make([]*model.IgMetricDaily, 0, len(metrics))

	for i := range metrics {
		m := &metrics[i]
		date, err := util.ParseMetricDate(m.Date)
		if err != nil {
			return nil, ErrParamInvalid
		}
		if m.Followers < 0 || m.Likes < 0 || m.Comments < 0 || m.Reach < 0 || m.Impressions < 0 {
			return nil, ErrParamInvalid
		}

		row := &model.IgMetricDaily{}
		if err = copier.Copy(row, m); err != nil {
			return nil, err
		}
		row.ProjectID = projectID
		row.MetricDate = date

		if idx, ok := byDate[m.Date]; ok {
			rows[idx] = row
			continue
		}
		byDate[m.Date] = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}
