package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSlowThreshold = 100 * time.Millisecond

// RedisLoggerHook 记录 Redis 错误与慢命令
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		name := cmd.Name()
		args := "[PROTECTED]"
		if name != "auth" && name != "hello" {
			args = fmt.Sprint(cmd.Args())
		}
		fields := []any{
			log.String("command", name),
			log.String("args", args),
			log.Duration("latency", elapsed),
		}

		switch {
		case err == nil:
			if elapsed > redisSlowThreshold {
				log.WarnContext(ctx, "Redis Slow", fields...)
			}
		case errors.Is(err, redis.Nil):
		case name == "client" && strings.Contains(err.Error(), "setinfo"):
		default:
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}
