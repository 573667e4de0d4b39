package kafka

import (
	"Pulse/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	metricConsumer sarama.ConsumerGroup
	metricHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, metricHandler *MetricWebhookHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	metricConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaMetricWebhook.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		metricConsumer: metricConsumer,
		metricHandler:  metricHandler,
	}, nil
}

// Start 启动消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaMetricWebhook.Topic
		log.Info("Metric webhook consumer started", "topic", topic)
		for {
			if err := m.metricConsumer.Consume(ctx, []string{topic}, m.metricHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range m.metricConsumer.Errors() {
			log.Error("Metric webhook consumer error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.metricConsumer.Close(); err != nil {
		log.Error("Failed to close metric consumer", "err", err)
	}
	return nil
}
