package dto

// MetricDTO 单日指标，date 为 YYYY-MM-DD (UTC)
type MetricDTO struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Followers   int    `json:"followers" validate:"gte=0"`
	Likes       int    `json:"likes" validate:"gte=0"`
	Comments    int    `json:"comments" validate:"gte=0"`
	Reach       int    `json:"reach" validate:"gte=0"`
	Impressions int    `json:"impressions" validate:"gte=0"`
}

type MetricBatchDTO struct {
	Metrics []MetricDTO `json:"metrics" binding:"required" validate:"required,min=1,max=366,dive"`
}

// InstagramWebhookDTO 外部推送的指标负载
type InstagramWebhookDTO struct {
	Secret   string      `json:"secret"`
	IgUserID string      `json:"igUserId" validate:"required,max=64"`
	Metrics  []MetricDTO `json:"metrics" validate:"required,min=1,max=366,dive"`
}
