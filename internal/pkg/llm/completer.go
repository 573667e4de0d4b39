package llm

import (
	"Pulse/internal/pkg/report"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"golang.org/x/sync/semaphore"
)

// Completer 基于 langchaingo 的补全实现
type Completer struct {
	model   llms.Model
	sem     *semaphore.Weighted
	timeout time.Duration
}

// NewCompleter 使用全局客户端，timeout<=0 表示只受调用方 ctx 约束
func NewCompleter(timeout time.Duration) *Completer {
	return newCompleter(llmClient, TextSem, timeout)
}

func newCompleter(model llms.Model, sem *semaphore.Weighted, timeout time.Duration) *Completer {
	return &Completer{model: model, sem: sem, timeout: timeout}
}

func (c *Completer) Complete(ctx context.Context, system, user string, opts report.CompletionOptions) (string, error) {
	if c.model == nil {
		return "", errors.New("llm client is not initialized")
	}

	// 超时包含排队等待并发名额的时间
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.sem.Release(1)

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(user)},
		},
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}
	if opts.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	log.InfoContext(ctx, "正在请求AI大模型", "model", opts.Model)
	resp, err := c.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("AI大模型返回数据为空")
	}
	return resp.Choices[0].Content, nil
}
