package repository

import (
	"Pulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgMetricRepo_UpsertByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewIgMetricRepo(setupDB(t))
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveOrUpdateMetrics(ctx, []*model.IgMetricDaily{
		{ProjectID: 1, MetricDate: date, Followers: 100, Likes: 10},
	}))
	require.NoError(t, repo.SaveOrUpdateMetrics(ctx, []*model.IgMetricDaily{
		{ProjectID: 1, MetricDate: date, Followers: 150, Likes: 20, Reach: 900},
	}))

	rows, err := repo.GetRecentMetrics(ctx, 1, 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 150, rows[0].Followers)
	assert.Equal(t, 20, rows[0].Likes)
	assert.Equal(t, 900, rows[0].Reach)
}

func TestIgMetricRepo_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewIgMetricRepo(setupDB(t))
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	batch := make([]*model.IgMetricDaily, 0, 40)
	for i := 0; i < 40; i++ {
		batch = append(batch, &model.IgMetricDaily{ProjectID: 3, MetricDate: start.AddDate(0, 0, i), Followers: i})
	}
	require.NoError(t, repo.SaveOrUpdateMetrics(ctx, batch))

	rows, err := repo.GetRecentMetrics(ctx, 3, 30)
	require.NoError(t, err)
	require.Len(t, rows, 30)
	assert.Equal(t, 39, rows[0].Followers)
	assert.Equal(t, 10, rows[29].Followers)

	since, err := repo.GetMetricsSince(ctx, 3, start.AddDate(0, 0, 35))
	require.NoError(t, err)
	assert.Len(t, since, 5)
}
