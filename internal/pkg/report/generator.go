package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// MaxAttempts 单次生成最多请求模型的次数，固定不可配置
const MaxAttempts = 3

// DefaultTemperature 补全温度
const DefaultTemperature = 0.7

var errEmptyContent = errors.New("empty completion content")

// CompletionOptions 补全参数
type CompletionOptions struct {
	JSONMode    bool
	Temperature float64
	Model       string
}

// Completer 文本补全服务，失败时返回 error
type Completer interface {
	Complete(ctx context.Context, system, user string, opts CompletionOptions) (string, error)
}

// State 生成状态机的状态
type State int

const (
	StateAttempt State = iota
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAttempt:
		return "attempt"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AttemptRecord 一次尝试的记录
type AttemptRecord struct {
	Attempt int
	Prompt  string
	Raw     string
	Errors  []string
	Err     error
	Latency time.Duration
}

// Outcome 成功生成的内容
type Outcome struct {
	Content  map[string]any
	Raw      []byte
	Attempts int
}

// Generator 重试控制器：调用模型、解析 JSON、结构校验，失败时追加纠错说明后重试
type Generator struct {
	completer Completer
	options   CompletionOptions
}

type GeneratorOption func(*Generator)

// WithModel 指定模型名
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		g.options.Model = model
	}
}

func NewGenerator(completer Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		completer: completer,
		options: CompletionOptions{
			JSONMode:    true,
			Temperature: DefaultTemperature,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model 当前使用的模型名
func (g *Generator) Model() string {
	return g.options.Model
}

// machine 状态机当前位置
type machine struct {
	state    State
	attempt  int
	prompt   string
	lastErr  error
	lastVals []string
}

// Run 执行生成状态机，返回 Outcome 或终态错误；records 在成功与失败时都会返回
func (g *Generator) Run(ctx context.Context, t Type, prompt string) (*Outcome, []AttemptRecord, error) {
	if _, ok := kinds[t]; !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownReportType, string(t))
	}

	m := &machine{state: StateAttempt, attempt: 1, prompt: prompt}
	records := make([]AttemptRecord, 0, MaxAttempts)

	for m.state == StateAttempt {
		if err := ctx.Err(); err != nil {
			return nil, records, err
		}

		rec := AttemptRecord{Attempt: m.attempt, Prompt: m.prompt}
		start := time.Now()
		raw, err := g.completer.Complete(ctx, SystemPrompt, m.prompt, g.options)
		rec.Latency = time.Since(start)
		rec.Raw = raw

		if err != nil {
			// 调用方取消时直接中止，不消耗重试
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, records, ctxErr
			}
			rec.Err = fmt.Errorf("%w: %v", ErrCompletionTransport, err)
			records = append(records, rec)
			m.failAttempt(rec.Err)
			continue
		}

		content, cleaned, err := ParseContent(raw)
		if err != nil {
			rec.Err = fmt.Errorf("%w: %v", ErrCompletionTransport, err)
			records = append(records, rec)
			m.failAttempt(rec.Err)
			continue
		}

		result := Validate(t, content)
		if result.Valid {
			records = append(records, rec)
			m.state = StateDone
			return &Outcome{Content: content, Raw: cleaned, Attempts: m.attempt}, records, nil
		}

		rec.Errors = result.Errors
		records = append(records, rec)
		m.rejectShape(result.Errors)
	}

	if m.lastVals != nil {
		return nil, records, &ValidationFailedError{Errors: m.lastVals}
	}
	return nil, records, m.lastErr
}

// failAttempt 传输或解析失败：消耗一次尝试，不修改提示词
func (m *machine) failAttempt(err error) {
	m.lastErr = err
	m.lastVals = nil
	m.advance()
}

// rejectShape 结构校验失败：追加纠错说明后进入下一次尝试
func (m *machine) rejectShape(errs []string) {
	m.lastErr = nil
	m.lastVals = errs
	if m.attempt < MaxAttempts {
		m.prompt = CorrectPrompt(m.prompt, errs)
	}
	m.advance()
}

func (m *machine) advance() {
	if m.attempt >= MaxAttempts {
		m.state = StateFailed
		return
	}
	m.attempt++
}

// ParseContent 去掉 markdown 代码块包裹后解析为 JSON 对象
func ParseContent(raw string) (map[string]any, []byte, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, nil, errEmptyContent
	}

	var content map[string]any
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if content == nil {
		return nil, nil, errors.New("response is not a JSON object")
	}
	return content, []byte(cleaned), nil
}
