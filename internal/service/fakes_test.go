package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/es"
	"Pulse/internal/pkg/mongo"
	"Pulse/internal/pkg/report"
	"Pulse/internal/repository"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "service_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// memStore 内存版 redis.Store
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) GetValue(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memStore) SetWithExpiration(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func (m *memStore) SetIfAbsent(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memStore) DeleteKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) TryLock(_ context.Context, key string, value interface{}, _ time.Duration, _ int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memStore) UnLock(_ context.Context, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[key] == value.(string) {
		delete(m.values, key)
	}
}

type fakeReportES struct {
	indexed []*es.ReportES
	hits    []*es.ReportES
	err     error
}

func (f *fakeReportES) IndexReport(_ context.Context, r *es.ReportES) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, r)
	return nil
}

func (f *fakeReportES) SearchReports(_ context.Context, _ uint64, _, _ string, _, _ int) ([]*es.ReportES, int64, error) {
	return f.hits, int64(len(f.hits)), f.err
}

type fakeGenerationLog struct {
	entries []*mongo.GenerationLog
}

func (f *fakeGenerationLog) InsertLog(_ context.Context, entry *mongo.GenerationLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeGenerationLog) ListLogs(_ context.Context, projectID uint64, limit, offset int64) ([]*mongo.GenerationLog, error) {
	res := make([]*mongo.GenerationLog, 0)
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ProjectID == projectID {
			res = append(res, f.entries[i])
		}
	}
	if offset >= int64(len(res)) {
		return []*mongo.GenerationLog{}, nil
	}
	res = res[offset:]
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

type fakeExporter struct {
	objects map[string][]byte
}

func (f *fakeExporter) Upload(_ context.Context, objectName string, data []byte, _ string) error {
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[objectName] = data
	return nil
}

func (f *fakeExporter) PresignedURL(_ context.Context, objectName, _ string, _ time.Duration) (string, error) {
	if _, ok := f.objects[objectName]; !ok {
		return "", errors.New("no such object")
	}
	return "https://files.test/" + objectName + "?X-Amz-Signature=abc", nil
}

// scriptedCompleter 依次返回预设内容
type scriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (c *scriptedCompleter) Complete(ctx context.Context, _, user string, _ report.CompletionOptions) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, user)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.err != nil {
		return "", c.err
	}
	idx := min(len(c.prompts)-1, len(c.replies)-1)
	return c.replies[idx], nil
}

func (c *scriptedCompleter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

// harness 真实 SQLite 仓储 + 外部依赖的替身
type harness struct {
	db         *gorm.DB
	projects   repository.ProjectRepo
	onboarding repository.OnboardingRepo
	metrics    repository.IgMetricRepo
	reports    repository.AiReportRepo
	store      *memStore
	reportES   *fakeReportES
	genLog     *fakeGenerationLog
	exporter   *fakeExporter
	completer  *scriptedCompleter
	svc        *reportServiceImpl
	metricSvc  *metricServiceImpl
	onboardSvc OnboardingService
	projectSvc ProjectService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := setupDB(t)
	h := &harness{
		db:         db,
		projects:   repository.NewProjectRepo(db),
		onboarding: repository.NewOnboardingRepo(db),
		metrics:    repository.NewIgMetricRepo(db),
		reports:    repository.NewAiReportRepo(db),
		store:      newMemStore(),
		reportES:   &fakeReportES{},
		genLog:     &fakeGenerationLog{},
		exporter:   &fakeExporter{},
		completer:  &scriptedCompleter{},
	}
	h.svc = NewReportService(
		h.projects, h.onboarding, h.metrics, h.reports,
		report.NewGenerator(h.completer, report.WithModel("gpt-test")),
		h.store, h.reportES, h.genLog, h.exporter,
		ReportSettings{LatestCacheTTL: time.Minute, LockTTL: time.Minute, ExportTTL: time.Hour},
	).(*reportServiceImpl)
	h.svc.now = func() time.Time { return fixedNow }

	h.metricSvc = NewMetricService(h.projects, h.metrics).(*metricServiceImpl)
	h.metricSvc.now = func() time.Time { return fixedNow }
	h.onboardSvc = NewOnboardingService(h.projects, h.onboarding)
	h.projectSvc = NewProjectService(h.projects)
	return h
}

// seedProject 创建项目，可选写入已完成的问卷
func (h *harness) seedProject(t *testing.T, owner, plan string, onboarded bool) *model.Project {
	t.Helper()
	ctx := context.Background()
	p := &model.Project{OwnerSubject: owner, Name: "Brand " + owner, Plan: plan}
	require.NoError(t, h.projects.CreateProject(ctx, p))
	if onboarded {
		require.NoError(t, h.onboarding.SaveOrUpdateOnboarding(ctx, &model.OnboardingResponse{
			ProjectID:      p.ID,
			BrandTone:      "Playful and warm",
			Goals:          "Grow local bookings",
			TargetAudience: "Young professionals",
			Competitors:    "@rival_one, @rival_two",
			DesignStyle:    "Pastel minimal",
			Completed:      true,
		}))
	}
	return p
}

func (h *harness) seedMetrics(t *testing.T, projectID uint64, n int) {
	t.Helper()
	rows := make([]*model.IgMetricDaily, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &model.IgMetricDaily{
			ProjectID:  projectID,
			MetricDate: report.DayStart(fixedNow).AddDate(0, 0, -i),
			Followers:  1000 - i*10,
			Likes:      50 + i,
			Comments:   5,
			Reach:      800,
		})
	}
	require.NoError(t, h.metrics.SaveOrUpdateMetrics(context.Background(), rows))
}

func (h *harness) reportCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(&model.AiReport{}).Count(&n).Error)
	return n
}
