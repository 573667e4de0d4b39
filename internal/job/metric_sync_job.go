package job

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/instagram"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/util"
	"context"
	log "log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	metricSyncConcurrency = 4
	metricSyncLockTTL     = 30 * time.Minute
)

type instagramLister interface {
	ListProjectsWithInstagram(ctx context.Context) ([]*model.Project, error)
}

type dailyMetricSaver interface {
	SaveDailyMetrics(ctx context.Context, projectID uint64, metrics []dto.MetricDTO) (int, error)
}

// MetricSyncJob 每天拉取前一天 (UTC) 的 Instagram 指标
type MetricSyncJob struct {
	projects instagramLister
	client   instagram.Client
	metrics  dailyMetricSaver
	store    redis.Store
	now      func() time.Time
}

func NewMetricSyncJob(projects instagramLister, client instagram.Client, metrics dailyMetricSaver, store redis.Store) *MetricSyncJob {
	return &MetricSyncJob{
		projects: projects,
		client:   client,
		metrics:  metrics,
		store:    store,
		now:      time.Now,
	}
}

func (s *MetricSyncJob) Run() {
	ctx := logger.WithTrace(context.Background(), "job-metric-"+uuid.NewString())
	_, _ = s.RunContext(ctx)
}

// RunContext 多实例部署时只有拿到当日锁的实例执行
func (s *MetricSyncJob) RunContext(ctx context.Context) (synced int64, err error) {
	day := util.GetMidnight(s.now()).AddDate(0, 0, -1)
	dayStr := day.Format(consts.MetricDateLayout)

	lockKey := consts.MetricSyncLock + dayStr
	lockVal := uuid.NewString()
	locked, err := s.store.TryLock(ctx, lockKey, lockVal, metricSyncLockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "metric sync lock error", "err", err)
		return 0, err
	}
	if !locked {
		log.InfoContext(ctx, "metric sync already running elsewhere", "day", dayStr)
		return 0, nil
	}
	defer s.store.UnLock(context.WithoutCancel(ctx), lockKey, lockVal)

	projects, err := s.projects.ListProjectsWithInstagram(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list instagram projects error", "err", err)
		return 0, err
	}

	var count atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricSyncConcurrency)

	for _, p := range projects {
		g.Go(func() error {
			snap, err := s.client.DailySnapshot(gctx, p.IgUserID, p.IgAccessToken, day)
			if err != nil {
				log.WarnContext(gctx, "fetch instagram snapshot error", "project_id", p.ID, "err", err)
				return nil
			}
			_, err = s.metrics.SaveDailyMetrics(gctx, p.ID, []dto.MetricDTO{{
				Date:        dayStr,
				Followers:   snap.Followers,
				Likes:       snap.Likes,
				Comments:    snap.Comments,
				Reach:       snap.Reach,
				Impressions: snap.Impressions,
			}})
			if err != nil {
				log.ErrorContext(gctx, "save instagram snapshot error", "project_id", p.ID, "err", err)
				return nil
			}
			count.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "metric sync job done", "day", dayStr, "projects", len(projects), "synced", count.Load())
	return count.Load(), nil
}
