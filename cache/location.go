package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"sea-routing/model"
)

// LocationFinder 按名称查找地点
type LocationFinder interface {
	FindByName(ctx context.Context, name string) (*model.Location, error)
	FindByID(ctx context.Context, id uint) (*model.Location, error)
	Search(ctx context.Context, f model.LocationFilter) ([]model.Location, int64, error)
}

// LocationCache 在 LocationFinder 前面加一层进程内 LRU, 只缓存按名称查找的命中结果
// 未命中 (nil) 和错误都不缓存
type LocationCache struct {
	LocationFinder
	byName *expirable.LRU[string, model.Location]
}

// NewLocationCache 创建带过期时间的名称缓存
func NewLocationCache(next LocationFinder, size int, ttl time.Duration) *LocationCache {
	if size <= 0 {
		size = 256
	}
	return &LocationCache{
		LocationFinder: next,
		byName:         expirable.NewLRU[string, model.Location](size, nil, ttl),
	}
}

// FindByName 先查缓存, 再查下层存储
func (c *LocationCache) FindByName(ctx context.Context, name string) (*model.Location, error) {
	if loc, ok := c.byName.Get(name); ok {
		return &loc, nil
	}

	loc, err := c.LocationFinder.FindByName(ctx, name)
	if err != nil || loc == nil {
		return loc, err
	}
	c.byName.Add(name, *loc)
	return loc, nil
}

// Len 当前缓存条目数
func (c *LocationCache) Len() int {
	return c.byName.Len()
}
