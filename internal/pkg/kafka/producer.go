package kafka

import (
	"Pulse/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// Producer 同步投递到固定 topic
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(kafkaCfg config.KafkaConfig, topic string) (*Producer, error) {
	p, err := sarama.NewSyncProducer(kafkaCfg.Brokers, newSaramaConfig(kafkaCfg))
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topic: topic}, nil
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "kafka message published", "topic", p.topic, "partition", partition, "offset", offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
