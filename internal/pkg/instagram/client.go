package instagram

import (
	"Pulse/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const mediaPageLimit = 50

// Graph API 的时间带 +0000 形式的时区
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// Snapshot 某一天的账号指标
type Snapshot struct {
	Date        time.Time
	Followers   int
	Likes       int
	Comments    int
	Reach       int
	Impressions int
}

// Client Instagram Graph API 的最小封装
type Client interface {
	DailySnapshot(ctx context.Context, igUserID, accessToken string, day time.Time) (*Snapshot, error)
}

type clientImpl struct {
	http *resty.Client
}

func NewClient(cfg config.InstagramConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &clientImpl{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond),
	}
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type accountResp struct {
	FollowersCount int `json:"followers_count"`
}

type insightsResp struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value   int    `json:"value"`
			EndTime string `json:"end_time"`
		} `json:"values"`
	} `json:"data"`
}

type mediaResp struct {
	Data []struct {
		LikeCount     int    `json:"like_count"`
		CommentsCount int    `json:"comments_count"`
		Timestamp     string `json:"timestamp"`
	} `json:"data"`
}

// DailySnapshot 汇总 day (UTC) 当天的粉丝、触达以及当天发布内容的互动
func (c *clientImpl) DailySnapshot(ctx context.Context, igUserID, accessToken string, day time.Time) (*Snapshot, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	snap := &Snapshot{Date: start}

	var account accountResp
	if err := c.get(ctx, "/"+igUserID, accessToken, map[string]string{
		"fields": "followers_count",
	}, &account); err != nil {
		return nil, err
	}
	snap.Followers = account.FollowersCount

	var insights insightsResp
	if err := c.get(ctx, "/"+igUserID+"/insights", accessToken, map[string]string{
		"metric": "reach,impressions",
		"period": "day",
		"since":  fmt.Sprint(start.Unix()),
		"until":  fmt.Sprint(end.Unix()),
	}, &insights); err != nil {
		return nil, err
	}
	for _, metric := range insights.Data {
		total := 0
		for _, v := range metric.Values {
			total += v.Value
		}
		switch metric.Name {
		case "reach":
			snap.Reach = total
		case "impressions":
			snap.Impressions = total
		}
	}

	var media mediaResp
	if err := c.get(ctx, "/"+igUserID+"/media", accessToken, map[string]string{
		"fields": "like_count,comments_count,timestamp",
		"limit":  fmt.Sprint(mediaPageLimit),
	}, &media); err != nil {
		return nil, err
	}
	for _, m := range media.Data {
		ts, ok := parseGraphTime(m.Timestamp)
		if !ok || ts.Before(start) || !ts.Before(end) {
			continue
		}
		snap.Likes += m.LikeCount
		snap.Comments += m.CommentsCount
	}

	return snap, nil
}

func (c *clientImpl) get(ctx context.Context, path, accessToken string, query map[string]string, out any) error {
	var apiErr graphError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetQueryParam("access_token", accessToken).
		SetResult(out).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("instagram request %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("instagram request %s: status %d: %s", path, resp.StatusCode(), apiErr.Error.Message)
	}
	return nil
}

func parseGraphTime(s string) (time.Time, bool) {
	for _, layout := range []string{graphTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
