// Package service 实现地点搜索、最近节点解析和路径规划
package service

import (
	"context"
	"time"

	"sea-routing/model"
)

// LocationStore 只读的地点存储
type LocationStore interface {
	// FindByName 不存在时返回 nil, nil
	FindByName(ctx context.Context, name string) (*model.Location, error)
	// FindByID 不存在时返回 nil, nil
	FindByID(ctx context.Context, id uint) (*model.Location, error)
	Search(ctx context.Context, f model.LocationFilter) ([]model.Location, int64, error)
}

// GraphStore 只读的航线图
type GraphStore interface {
	// NearestPoint 图为空时返回 nil, nil
	NearestPoint(ctx context.Context, c model.Coordinate) (*model.NearestNode, error)
	// ShortestPath 没有路径时返回 nil, nil
	ShortestPath(ctx context.Context, startNode, endNode int64) (*model.Path, error)
}

// PlanCache 路径结果缓存, 实现可以是 redis 或者 nil
type PlanCache interface {
	Get(ctx context.Context, key string) (*model.RoutePlan, bool, error)
	Set(ctx context.Context, key string, plan *model.RoutePlan, ttl time.Duration) error
}

// Recorder 指标记录
type Recorder interface {
	ObservePlan(mode string, outcome string, seconds float64)
	ObserveSearch(method string, outcome string, seconds float64)
	CacheResult(hit bool)
}

type nopRecorder struct{}

func (nopRecorder) ObservePlan(string, string, float64)   {}
func (nopRecorder) ObserveSearch(string, string, float64) {}
func (nopRecorder) CacheResult(bool)                      {}
