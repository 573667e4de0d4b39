package kafka

import (
	"Pulse/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，失败的消息指数退避重试直到成功或会话结束
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			ctx := logger.WithTrace(session.Context(), "kafka-"+uuid.NewString())
			retryInterval := 100 * time.Millisecond

			for {
				err := logic(ctx, m)
				if err == nil {
					break
				}
				select {
				case <-ctx.Done():
					return
				default:
				}

				log.ErrorContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "err", err)
				time.Sleep(retryInterval)

				retryInterval = min(retryInterval*2, 5*time.Second)
			}
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
	}
}
