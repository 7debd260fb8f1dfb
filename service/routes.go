package service

import (
	"context"

	"sea-routing/model"
)

// Routes 把解析器、规划器和编排器组合成一个对外服务
type Routes struct {
	*Resolver
	*Planner
	orchestrator *RoutePlanner
}

// NewRoutes 组合路线相关服务
func NewRoutes(resolver *Resolver, planner *Planner, orchestrator *RoutePlanner) *Routes {
	return &Routes{Resolver: resolver, Planner: planner, orchestrator: orchestrator}
}

// PlanByName 见 RoutePlanner.PlanByName
func (r *Routes) PlanByName(ctx context.Context, startName, endName string, mode model.PlanType) (*model.RoutePlan, error) {
	return r.orchestrator.PlanByName(ctx, startName, endName, mode)
}
