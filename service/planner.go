package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"sea-routing/errs"
	"sea-routing/model"
	"sea-routing/utils"
)

// Planner 最短路径规划与渲染
type Planner struct {
	graph    GraphStore
	cache    PlanCache
	cacheTTL time.Duration
	log      zerolog.Logger
	metrics  Recorder
}

// PlannerOption 规划器可选项
type PlannerOption func(*Planner)

// WithPlanCache 启用路径缓存
func WithPlanCache(c PlanCache, ttl time.Duration) PlannerOption {
	return func(p *Planner) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

// WithRecorder 设置指标记录
func WithRecorder(r Recorder) PlannerOption {
	return func(p *Planner) {
		if r != nil {
			p.metrics = r
		}
	}
}

// NewPlanner 创建路径规划器
func NewPlanner(graph GraphStore, log zerolog.Logger, opts ...PlannerOption) *Planner {
	p := &Planner{graph: graph, log: log, metrics: nopRecorder{}}
	for _, o := range opts {
		o(p)
	}
	return p
}

// PlanKey 缓存键
func PlanKey(start, end int64, mode model.PlanType) string {
	raw := fmt.Sprintf("%d:%d:%s", start, end, mode)
	return fmt.Sprintf("plan:%s:%016x", mode, xxhash.Sum64String(raw))
}

// Plan 计算 start 到 end 的最短路径并按 mode 渲染
func (p *Planner) Plan(ctx context.Context, start, end int64, mode model.PlanType) (plan *model.RoutePlan, err error) {
	const op = "plan.route"
	if !mode.Valid() {
		return nil, errs.Validation(op, "unknown plan type %q", mode)
	}

	begin := time.Now()
	defer func() { p.metrics.ObservePlan(string(mode), outcome(err), time.Since(begin).Seconds()) }()

	key := PlanKey(start, end, mode)
	if cached := p.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	path, err := p.graph.ShortestPath(ctx, start, end)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			p.log.Error().Err(err).Str("op", op).Int64("start", start).Int64("end", end).Msg("shortest path failed")
		}
		return nil, errs.Internal(op, err)
	}
	if path == nil || len(path.Turns) == 0 {
		return nil, errs.NotFound(op, errs.ErrPlanNotFound)
	}

	plan = Render(path, start, end, mode)
	p.toCache(ctx, key, plan)
	return plan, nil
}

// Render 把路径渲染为逐段文本或合并后的一条线
func Render(path *model.Path, start, end int64, mode model.PlanType) *model.RoutePlan {
	plan := &model.RoutePlan{Type: mode, StartNode: start, EndNode: end, Cost: path.Cost}

	if mode == model.PlanLine {
		lines := make([][]model.Coordinate, 0, len(path.Turns))
		for _, t := range path.Turns {
			lines = append(lines, t.Path)
		}
		merged := utils.MergeLines(lines)
		plan.Line = utils.FormatLineString(merged)
		plan.LineString = utils.ToGeoJSON(merged)
		plan.Polyline = utils.EncodePolyline(merged)
		return plan
	}

	var agg float64
	plan.Segments = make([]model.Segment, 0, len(path.Turns))
	for i, t := range path.Turns {
		plan.Segments = append(plan.Segments, model.Segment{
			Seq:         i + 1,
			ID:          t.ID,
			Name:        t.Name,
			Length:      t.Length,
			FromNode:    t.FromNode,
			ToNode:      t.ToNode,
			Cost:        t.Length,
			AggCost:     agg,
			RouteLength: agg + t.Length,
			Geom:        utils.FormatLineString(t.Path),
			LineString:  utils.ToGeoJSON(t.Path),
		})
		agg += t.Length
	}
	return plan
}

func (p *Planner) fromCache(ctx context.Context, key string) *model.RoutePlan {
	if p.cache == nil {
		return nil
	}
	plan, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("plan cache read failed")
		return nil
	}
	p.metrics.CacheResult(ok)
	if !ok {
		return nil
	}
	return plan
}

func (p *Planner) toCache(ctx context.Context, key string, plan *model.RoutePlan) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, key, plan, p.cacheTTL); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("plan cache write failed")
	}
}
