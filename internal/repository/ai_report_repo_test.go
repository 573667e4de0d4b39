package repository

import (
	"Pulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newReport(projectID uint64, reportType string, createdAt time.Time, content string) *model.AiReport {
	return &model.AiReport{
		ProjectID:  projectID,
		ReportType: reportType,
		Content:    datatypes.JSON(content),
		Score:      80,
		CreatedAt:  createdAt,
	}
}

func TestAiReportRepo_LatestEmpty(t *testing.T) {
	repo := NewAiReportRepo(setupDB(t))

	latest, err := repo.GetLatestReport(context.Background(), 1, "weekly_insight")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestAiReportRepo_LatestByCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewAiReportRepo(setupDB(t))
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	_, err := repo.InsertReport(ctx, newReport(1, "weekly_insight", base, `{"weekOf":"2024-05-06"}`))
	require.NoError(t, err)
	// 内容里的业务日期更早，但创建时间更晚，仍然是最新
	laterID, err := repo.InsertReport(ctx, newReport(1, "weekly_insight", base.Add(time.Hour), `{"weekOf":"2024-04-29"}`))
	require.NoError(t, err)
	_, err = repo.InsertReport(ctx, newReport(1, "action_plan", base.Add(2*time.Hour), `{"tasks":[]}`))
	require.NoError(t, err)
	_, err = repo.InsertReport(ctx, newReport(2, "weekly_insight", base.Add(3*time.Hour), `{}`))
	require.NoError(t, err)

	latest, err := repo.GetLatestReport(ctx, 1, "weekly_insight")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, laterID, latest.ID)
	assert.JSONEq(t, `{"weekOf":"2024-04-29"}`, string(latest.Content))
}

func TestAiReportRepo_InsertIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewAiReportRepo(setupDB(t))
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	r := newReport(1, "caption_batch", now, `{"captions":[]}`)
	first, err := repo.InsertReport(ctx, r)
	require.NoError(t, err)
	second, err := repo.InsertReport(ctx, r)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	list, err := repo.ListReports(ctx, 1, "", 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAiReportRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAiReportRepo(setupDB(t))
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		typ := "hashtag_list"
		if i%2 == 1 {
			typ = "action_plan"
		}
		_, err := repo.InsertReport(ctx, newReport(7, typ, base.AddDate(0, 0, i), `{}`))
		require.NoError(t, err)
	}

	all, err := repo.ListReports(ctx, 7, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}

	plans, err := repo.ListReports(ctx, 7, "action_plan", 10)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	limited, err := repo.ListReports(ctx, 7, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.True(t, limited[0].CreatedAt.Equal(base.AddDate(0, 0, 4)))
}

func TestAiReportRepo_CountSinceDayStart(t *testing.T) {
	ctx := context.Background()
	repo := NewAiReportRepo(setupDB(t))
	dayStart := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.InsertReport(ctx, newReport(1, "weekly_insight", dayStart.Add(-time.Millisecond), `{}`))
	require.NoError(t, err)
	_, err = repo.InsertReport(ctx, newReport(1, "weekly_insight", dayStart, `{}`))
	require.NoError(t, err)
	_, err = repo.InsertReport(ctx, newReport(1, "weekly_insight", dayStart.Add(8*time.Hour), `{}`))
	require.NoError(t, err)
	_, err = repo.InsertReport(ctx, newReport(1, "caption_batch", dayStart.Add(time.Hour), `{}`))
	require.NoError(t, err)

	count, err := repo.CountReportsSince(ctx, 1, "weekly_insight", dayStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
