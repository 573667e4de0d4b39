package redis

import (
	"context"
	"time"
)

// Store 业务层使用的缓存与锁操作
type Store interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	DeleteKey(ctx context.Context, key string) error
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{})
}

type clientStore struct{}

// NewStore 基于全局 Rdb 的 Store 实现
func NewStore() Store {
	return clientStore{}
}

func (clientStore) GetValue(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (clientStore) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return SetWithExpiration(ctx, key, value, expiration)
}

func (clientStore) SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return SetIfAbsent(ctx, key, value, expiration)
}

func (clientStore) DeleteKey(ctx context.Context, key string) error {
	return DeleteKey(ctx, key)
}

func (clientStore) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	return TryLock(ctx, key, value, expiration, retryTimes)
}

func (clientStore) UnLock(ctx context.Context, key string, value interface{}) {
	UnLock(ctx, key, value)
}
