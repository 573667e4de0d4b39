package logger

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const (
	mongoSlowThreshold = 200 * time.Millisecond
	mongoDetailLimit   = 1000
)

// NewMongoMonitor 记录 MongoDB 命令执行情况
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			detail := evt.Command.String()
			if len(detail) > mongoDetailLimit {
				detail = detail[:mongoDetailLimit] + "...[truncated]"
			}
			log.DebugContext(ctx, "MongoDB Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
				log.String("cmd_detail", detail),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			fields := []any{
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
			}
			if evt.Duration > mongoSlowThreshold {
				log.WarnContext(ctx, "MongoDB Slow", fields...)
				return
			}
			log.InfoContext(ctx, "MongoDB Success", fields...)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
				log.Any("err", evt.Failure),
			)
		},
	}
}
