package report

const (
	scoreBase         = 50
	scoreCompleteness = 20
	scoreMetrics      = 10
	scoreMax          = 100
)

// Score 粗粒度的完整度评分，只看结构数量与是否有指标，不评价内容质量
func Score(t Type, content map[string]any, metrics []MetricRow) int {
	score := scoreBase
	if k, ok := kinds[t]; ok && content != nil && k.complete(content) {
		score += scoreCompleteness
	}
	if len(metrics) > 0 {
		score += scoreMetrics
	}
	return min(score, scoreMax)
}
