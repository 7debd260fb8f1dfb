package service

import (
	"context"

	"github.com/rs/zerolog"

	"sea-routing/errs"
	"sea-routing/model"
)

// PairResolver 并发解析起终点
type PairResolver interface {
	ResolvePair(ctx context.Context, startName, endName string) (*NodePair, error)
}

// RoutePlanner 按起终点名称规划路径
type RoutePlanner struct {
	resolver PairResolver
	planner  *Planner
	log      zerolog.Logger
}

// NewRoutePlanner 组合最近节点解析和最短路径规划
func NewRoutePlanner(resolver PairResolver, planner *Planner, log zerolog.Logger) *RoutePlanner {
	return &RoutePlanner{resolver: resolver, planner: planner, log: log}
}

// PlanByName 起点取最近边的 fromnode, 终点取最近边的 tonode
func (r *RoutePlanner) PlanByName(ctx context.Context, startName, endName string, mode model.PlanType) (*model.RoutePlan, error) {
	const op = "plan.byname"
	if !mode.Valid() {
		return nil, errs.Validation(op, "unknown plan type %q", mode)
	}

	pair, err := r.resolver.ResolvePair(ctx, startName, endName)
	if err != nil {
		return nil, err
	}
	if pair == nil || pair.StartNode == nil || pair.EndNode == nil {
		return nil, errs.NotFound(op, errs.ErrEndpointsNotFound)
	}

	r.log.Debug().
		Str("start", startName).
		Str("end", endName).
		Int64("from_node", pair.StartNode.FromNode).
		Int64("to_node", pair.EndNode.ToNode).
		Msg("planning between resolved nodes")
	return r.planner.Plan(ctx, pair.StartNode.FromNode, pair.EndNode.ToNode, mode)
}
