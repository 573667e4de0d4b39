package logger

import (
	"context"
	log "log/slog"
)

const (
	// TraceIDKey Context 中链路 ID 的 Key
	TraceIDKey = "trace_id"
	// SubjectKey Context 中调用方身份的 Key
	SubjectKey = "subject"
)

// ContextHandler 从 ctx 中提取 trace_id 与 subject 写入日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
		if subject, ok := ctx.Value(SubjectKey).(string); ok && subject != "" {
			r.AddAttrs(log.String(SubjectKey, subject))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// TeeHandler 将日志分发到多个 Handler
type TeeHandler struct {
	handlers []log.Handler
}

func (s *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var firstErr error
	for _, h := range s.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	next := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: next}
}

func (s *TeeHandler) WithGroup(name string) log.Handler {
	next := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		next[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: next}
}

// RemoteFilterHandler 只把带 trace_id 的日志上报到 Logstash
type RemoteFilterHandler struct {
	next log.Handler
}

func (s *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	traced := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			traced = true
			return false
		}
		return true
	})
	if !traced {
		return nil
	}
	return s.next.Handle(ctx, r)
}

func (s *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithAttrs(attrs)}
}

func (s *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithGroup(name)}
}

// WithTrace 返回携带 trace_id 的 ctx，后台任务用 prefix 区分来源
func WithTrace(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}
