package kafka

import (
	"Pulse/internal/api/dto"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// MetricIngester 将 webhook 指标写入业务库
type MetricIngester interface {
	IngestForIgUser(ctx context.Context, igUserID string, metrics []dto.MetricDTO) (int, error)
}

// MetricWebhookHandler 消费 webhook 投递的指标
type MetricWebhookHandler struct {
	ingester MetricIngester
	// isPermanent 判断错误是否无需重试
	isPermanent func(error) bool
}

func NewMetricWebhookHandler(ingester MetricIngester, permanent ...error) *MetricWebhookHandler {
	return &MetricWebhookHandler{
		ingester: ingester,
		isPermanent: func(err error) bool {
			for _, p := range permanent {
				if errors.Is(err, p) {
					return true
				}
			}
			return false
		},
	}
}

func (s *MetricWebhookHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("metric webhook consumer setup")
	return nil
}

func (s *MetricWebhookHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("metric webhook consumer cleanup")
	return nil
}

func (s *MetricWebhookHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *MetricWebhookHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload dto.InstagramWebhookDTO
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		log.WarnContext(ctx, "drop malformed metric message", "offset", msg.Offset, "err", err)
		return nil
	}

	n, err := s.ingester.IngestForIgUser(ctx, payload.IgUserID, payload.Metrics)
	if err != nil {
		if s.isPermanent(err) {
			log.WarnContext(ctx, "drop metric message", "ig_user_id", payload.IgUserID, "err", err)
			return nil
		}
		return err
	}

	log.InfoContext(ctx, "metric webhook ingested", "ig_user_id", payload.IgUserID, "rows", n)
	return nil
}
