package kafka

import (
	"Pulse/internal/api/dto"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
)

var errUnknown = errors.New("unknown account")

type fakeIngester struct {
	err   error
	calls int
	last  []dto.MetricDTO
}

func (f *fakeIngester) IngestForIgUser(_ context.Context, _ string, metrics []dto.MetricDTO) (int, error) {
	f.calls++
	f.last = metrics
	return len(metrics), f.err
}

func TestMetricWebhookHandler_Logic(t *testing.T) {
	ctx := context.Background()
	ing := &fakeIngester{}
	h := NewMetricWebhookHandler(ing, errUnknown)

	msg := &sarama.ConsumerMessage{Value: []byte(`{"igUserId":"1789","metrics":[{"date":"2024-05-10","followers":12}]}`)}
	assert.NoError(t, h.logic(ctx, msg))
	assert.Equal(t, 1, ing.calls)
	assert.Equal(t, 12, ing.last[0].Followers)

	// 格式错误直接丢弃
	assert.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: []byte(`{broken`)}))
	assert.Equal(t, 1, ing.calls)

	ing.err = errUnknown
	assert.NoError(t, h.logic(ctx, msg))

	ing.err = errors.New("db down")
	assert.Error(t, h.logic(ctx, msg))
}
