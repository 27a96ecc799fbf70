package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 封裝 Redis 實作，測試時以 FakeCache 替換
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.BoolCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNXFn func(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	IncrFn  func(ctx context.Context, key string) *redis.IntCmd
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

func (f *FakeCache) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if f.SetNXFn != nil {
		return f.SetNXFn(ctx, key, value, expiration)
	}
	panic("unexpected SetNX")
}

func (f *FakeCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.IncrFn != nil {
		return f.IncrFn(ctx, key)
	}
	panic("unexpected Incr")
}

func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
