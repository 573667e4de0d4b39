package job

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/instagram"
	"Pulse/internal/pkg/report"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjects struct {
	projects []*model.Project
	err      error
}

func (f *fakeProjects) ListOnboardedProjects(context.Context) ([]*model.Project, error) {
	return f.projects, f.err
}

func (f *fakeProjects) ListProjectsWithInstagram(context.Context) ([]*model.Project, error) {
	return f.projects, f.err
}

type fakeGenerator struct {
	mu     sync.Mutex
	types  []report.Type
	failOn map[uint64]error
}

func (f *fakeGenerator) GenerateForProject(_ context.Context, projectID uint64, reportType report.Type) (*dto.GenerateResultDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, reportType)
	if err := f.failOn[projectID]; err != nil {
		return nil, err
	}
	return &dto.GenerateResultDTO{Success: true, ReportID: projectID * 10}, nil
}

func TestWeeklyInsightJob(t *testing.T) {
	projects := &fakeProjects{projects: []*model.Project{{ID: 1}, {ID: 2}, {ID: 3}}}
	gen := &fakeGenerator{failOn: map[uint64]error{2: errors.New("rate limited")}}

	ok, failed, err := NewWeeklyInsightJob(projects, gen, 2).RunContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), ok)
	assert.Equal(t, int64(1), failed)
	assert.Len(t, gen.types, 3)
	for _, typ := range gen.types {
		assert.Equal(t, report.TypeWeeklyInsight, typ)
	}
}

func TestWeeklyInsightJob_RunFromCron(t *testing.T) {
	gen := &fakeGenerator{}
	NewWeeklyInsightJob(&fakeProjects{projects: []*model.Project{{ID: 1}, {ID: 2}}}, gen, 1).Run()
	assert.Len(t, gen.types, 2)
}

func TestWeeklyInsightJob_ListError(t *testing.T) {
	gen := &fakeGenerator{}
	_, _, err := NewWeeklyInsightJob(&fakeProjects{err: errors.New("db down")}, gen, 0).RunContext(context.Background())
	assert.Error(t, err)
	assert.Empty(t, gen.types)
}

type fakeInstagram struct {
	mu   sync.Mutex
	days []time.Time
	fail map[string]bool
}

func (f *fakeInstagram) DailySnapshot(_ context.Context, igUserID, _ string, day time.Time) (*instagram.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
	if f.fail[igUserID] {
		return nil, errors.New("graph api error")
	}
	return &instagram.Snapshot{Date: day, Followers: 100, Likes: 5, Reach: 40}, nil
}

type fakeSaver struct {
	mu    sync.Mutex
	saved map[uint64][]dto.MetricDTO
}

func (f *fakeSaver) SaveDailyMetrics(_ context.Context, projectID uint64, metrics []dto.MetricDTO) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = map[uint64][]dto.MetricDTO{}
	}
	f.saved[projectID] = append(f.saved[projectID], metrics...)
	return len(metrics), nil
}

type fakeLockStore struct {
	held     map[string]bool
	unlocked []string
}

func (f *fakeLockStore) GetValue(context.Context, string) (string, error) { return "", nil }

func (f *fakeLockStore) SetWithExpiration(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (f *fakeLockStore) SetIfAbsent(context.Context, string, interface{}, time.Duration) (bool, error) {
	return true, nil
}

func (f *fakeLockStore) DeleteKey(context.Context, string) error { return nil }

func (f *fakeLockStore) TryLock(_ context.Context, key string, _ interface{}, _ time.Duration, _ int) (bool, error) {
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLockStore) UnLock(_ context.Context, key string, _ interface{}) {
	delete(f.held, key)
	f.unlocked = append(f.unlocked, key)
}

func newMetricSyncJob(projects *fakeProjects, ig *fakeInstagram, saver *fakeSaver, store *fakeLockStore) *MetricSyncJob {
	j := NewMetricSyncJob(projects, ig, saver, store)
	j.now = func() time.Time { return time.Date(2024, 5, 10, 2, 30, 0, 0, time.UTC) }
	return j
}

func TestMetricSyncJob(t *testing.T) {
	projects := &fakeProjects{projects: []*model.Project{
		{ID: 1, IgUserID: "111", IgAccessToken: "a"},
		{ID: 2, IgUserID: "222", IgAccessToken: "b"},
	}}
	ig := &fakeInstagram{fail: map[string]bool{"222": true}}
	saver := &fakeSaver{}
	store := &fakeLockStore{held: map[string]bool{}}

	synced, err := newMetricSyncJob(projects, ig, saver, store).RunContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), synced)

	require.Len(t, saver.saved[1], 1)
	assert.Equal(t, "2024-05-09", saver.saved[1][0].Date)
	assert.Equal(t, 100, saver.saved[1][0].Followers)
	assert.Empty(t, saver.saved[2])

	for _, d := range ig.days {
		assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), d)
	}
	assert.Equal(t, []string{"lock:metric:sync:2024-05-09"}, store.unlocked)
}

func TestMetricSyncJob_SkipsWhenLocked(t *testing.T) {
	projects := &fakeProjects{projects: []*model.Project{{ID: 1, IgUserID: "111"}}}
	ig := &fakeInstagram{}
	store := &fakeLockStore{held: map[string]bool{"lock:metric:sync:2024-05-09": true}}

	synced, err := newMetricSyncJob(projects, ig, &fakeSaver{}, store).RunContext(context.Background())
	require.NoError(t, err)
	assert.Zero(t, synced)
	assert.Empty(t, ig.days)
	assert.Empty(t, store.unlocked)
}
