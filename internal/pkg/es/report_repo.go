package es

import (
	"context"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type ReportRepo interface {
	IndexReport(ctx context.Context, report *ReportES) error
	SearchReports(ctx context.Context, projectID uint64, reportType, keyword string, from, size int) ([]*ReportES, int64, error)
}

type ReportRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewReportRepo(client *elasticsearch.TypedClient) ReportRepo {
	return &ReportRepoImpl{client: client}
}

// IndexReport 报告只追加不修改，文档 ID 与数据库主键一致
func (s *ReportRepoImpl) IndexReport(ctx context.Context, report *ReportES) error {
	_, err := s.client.Index(ReportIndex).
		Id(strconv.FormatUint(report.ID, 10)).
		Document(report).
		Do(ctx)
	return err
}

func (s *ReportRepoImpl) SearchReports(ctx context.Context, projectID uint64, reportType, keyword string, from, size int) ([]*ReportES, int64, error) {
	if from >= MaxSearchDepth {
		return []*ReportES{}, 0, nil
	}

	boolQuery := &types.BoolQuery{
		Filter: []types.Query{
			{Term: map[string]types.TermQuery{"project_id": {Value: projectID}}},
		},
	}
	if reportType != "" {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{"report_type": {Value: reportType}},
		})
	}
	if keyword != "" {
		boolQuery.Must = []types.Query{{
			Match: map[string]types.MatchQuery{
				"content_text": {Query: keyword},
			},
		}}
	}

	resp, err := s.client.Search().
		Index(ReportIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	results := make([]*ReportES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc ReportES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		results = append(results, &doc)
	}
	return results, total, nil
}
