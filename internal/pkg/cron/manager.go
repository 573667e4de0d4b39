package cron

import (
	"Pulse/internal/api/config"
	"Pulse/internal/job"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	specs            config.CronConfig
	weeklyInsightJob *job.WeeklyInsightJob
	metricSyncJob    *job.MetricSyncJob
}

func NewCronManager(specs config.CronConfig, weeklyInsightJob *job.WeeklyInsightJob, metricSyncJob *job.MetricSyncJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		specs:            specs,
		weeklyInsightJob: weeklyInsightJob,
		metricSyncJob:    metricSyncJob,
	}
}

// RegisterJobs 注册定时任务，表达式为空时跳过
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{"metric_sync", s.specs.MetricSync, s.metricSyncJob},
		{"weekly_insight", s.specs.WeeklyInsight, s.weeklyInsightJob},
	}
	for _, j := range jobs {
		if j.spec == "" {
			log.Warn("cron job disabled", "job", j.name)
			continue
		}
		if _, err := s.engine.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(j.job)); err != nil {
			return err
		}
		log.Info("cron job registered", "job", j.name, "spec", j.spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
