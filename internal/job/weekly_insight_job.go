package job

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/report"
	"context"
	log "log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type onboardedLister interface {
	ListOnboardedProjects(ctx context.Context) ([]*model.Project, error)
}

type projectGenerator interface {
	GenerateForProject(ctx context.Context, projectID uint64, reportType report.Type) (*dto.GenerateResultDTO, error)
}

// WeeklyInsightJob 为每个完成问卷的项目生成周报
type WeeklyInsightJob struct {
	projects    onboardedLister
	generator   projectGenerator
	concurrency int
}

func NewWeeklyInsightJob(projects onboardedLister, generator projectGenerator, concurrency int) *WeeklyInsightJob {
	return &WeeklyInsightJob{
		projects:    projects,
		generator:   generator,
		concurrency: max(concurrency, 1),
	}
}

func (s *WeeklyInsightJob) Run() {
	ctx := logger.WithTrace(context.Background(), "job-weekly-"+uuid.NewString())
	_, _, _ = s.RunContext(ctx)
}

// RunContext 返回成功与失败的项目数，单个项目失败不影响其他项目
func (s *WeeklyInsightJob) RunContext(ctx context.Context) (succeeded, failed int64, err error) {
	projects, err := s.projects.ListOnboardedProjects(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list onboarded projects error", "err", err)
		return 0, 0, err
	}

	var ok, bad atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, p := range projects {
		g.Go(func() error {
			res, err := s.generator.GenerateForProject(gctx, p.ID, report.TypeWeeklyInsight)
			if err != nil {
				bad.Add(1)
				log.WarnContext(gctx, "weekly insight generation failed", "project_id", p.ID, "err", err)
				return nil
			}
			ok.Add(1)
			log.InfoContext(gctx, "weekly insight generated", "project_id", p.ID, "report_id", res.ReportID)
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "weekly insight job done", "projects", len(projects), "succeeded", ok.Load(), "failed", bad.Load())
	return ok.Load(), bad.Load(), nil
}
