// Package cache 路径规划结果和地点查询的缓存
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"sea-routing/model"
)

// Option 修改 redis 连接参数
type Option func(*redis.Options)

// WithDB 选择 redis 库
func WithDB(db int) Option {
	return func(o *redis.Options) { o.DB = db }
}

// WithPassword 设置 redis 密码
func WithPassword(pw string) Option {
	return func(o *redis.Options) { o.Password = pw }
}

// WithPoolSize 设置连接池大小
func WithPoolSize(n int) Option {
	return func(o *redis.Options) { o.PoolSize = n }
}

// RedisPlanCache 以 JSON 形式在 redis 中保存 RoutePlan
type RedisPlanCache struct {
	rdb *redis.Client
}

// NewRedisPlanCache 连接 redis 并 ping 一次
func NewRedisPlanCache(ctx context.Context, addr string, opts ...Option) (*RedisPlanCache, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	ro := &redis.Options{
		Addr:         addr,
		PoolSize:     16,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	for _, f := range opts {
		f(ro)
	}

	rdb := redis.NewClient(ro)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisPlanCache{rdb: rdb}, nil
}

// Get 命中时返回 plan, true; 未命中返回 nil, false, nil
func (c *RedisPlanCache) Get(ctx context.Context, key string) (*model.RoutePlan, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %q: %w", key, err)
	}

	var plan model.RoutePlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("decode cached plan %q: %w", key, err)
	}
	return &plan, true, nil
}

// Set 写入 plan, ttl 为 0 时不过期
func (c *RedisPlanCache) Set(ctx context.Context, key string, plan *model.RoutePlan, ttl time.Duration) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %q: %w", key, err)
	}
	return nil
}

// Close 关闭连接
func (c *RedisPlanCache) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}
