// Package handler 提供 HTTP 接口
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sea-routing/errs"
	"sea-routing/model"
	"sea-routing/service"
)

// LocationService 地点查询
type LocationService interface {
	SearchByCoords(ctx context.Context, q model.CoordQuery) ([]model.CoordResult, error)
	SearchByName(ctx context.Context, q model.NameQuery) (*model.LocationPage, error)
	GetByID(ctx context.Context, id uint) (*model.Location, error)
}

// RouteService 最近节点和路径规划
type RouteService interface {
	ResolvePair(ctx context.Context, startName, endName string) (*service.NodePair, error)
	Plan(ctx context.Context, start, end int64, mode model.PlanType) (*model.RoutePlan, error)
	PlanByName(ctx context.Context, startName, endName string, mode model.PlanType) (*model.RoutePlan, error)
}

// API 持有各个接口依赖的服务
type API struct {
	locations LocationService
	routes    RouteService
	log       zerolog.Logger
}

// New 创建 API
func New(locations LocationService, routes RouteService, log zerolog.Logger) *API {
	return &API{locations: locations, routes: routes, log: log}
}

// Register 在 /api 下注册路由
func (a *API) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/locations", a.SearchByName)
		api.GET("/locations/coords", a.SearchByCoords)
		api.GET("/locations/:id", a.GetLocation)

		api.GET("/turns/nearest", a.NearestNodes)
		api.GET("/turns/plans", a.PlanRoute)
		api.GET("/turns/plans/by-name", a.PlanRouteByName)
	}
}

// SearchByName 按关键字搜索地点
func (a *API) SearchByName(c *gin.Context) {
	var p NameSearchParams
	if !a.bind(c, c.ShouldBindQuery(&p)) {
		return
	}
	page, err := a.locations.SearchByName(c.Request.Context(), p.query())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SearchByCoords 坐标搜索
func (a *API) SearchByCoords(c *gin.Context) {
	var p CoordSearchParams
	if !a.bind(c, c.ShouldBindQuery(&p)) {
		return
	}
	res, err := a.locations.SearchByCoords(c.Request.Context(), p.query())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(res), "locations": res})
}

// GetLocation 按 ID 获取地点
func (a *API) GetLocation(c *gin.Context) {
	var p LocationIDParams
	if !a.bind(c, c.ShouldBindUri(&p)) {
		return
	}
	loc, err := a.locations.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// NearestNodes 起终点名称对应的最近节点
func (a *API) NearestNodes(c *gin.Context) {
	var p NearestParams
	if !a.bind(c, c.ShouldBindQuery(&p)) {
		return
	}
	pair, err := a.routes.ResolvePair(c.Request.Context(), p.StartPoint, p.EndPoint)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// PlanRoute 节点之间的路径规划
func (a *API) PlanRoute(c *gin.Context) {
	var p PlanParams
	if !a.bind(c, c.ShouldBindQuery(&p)) {
		return
	}
	plan, err := a.routes.Plan(c.Request.Context(), *p.StartNode, *p.EndNode, planType(p.Type))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PlanRouteByName 地点名称之间的路径规划
func (a *API) PlanRouteByName(c *gin.Context) {
	var p PlanByNameParams
	if !a.bind(c, c.ShouldBindQuery(&p)) {
		return
	}
	plan, err := a.routes.PlanByName(c.Request.Context(), p.StartPoint, p.EndPoint, planType(p.Type))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// bind 参数校验失败时写 400 并返回 false
func (a *API) bind(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters: " + err.Error()})
	return false
}

// fail 按错误类别映射 HTTP 状态码, 内部错误只返回通用信息
func (a *API) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	default:
		a.log.Error().Err(err).Str("op", errs.OpOf(err)).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": errs.Message(err)})
}
