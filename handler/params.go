package handler

import (
	"sea-routing/model"
)

// 请求参数及其约束, 由 gin 的 binding (go-playground/validator) 统一校验

// NameSearchParams GET /api/locations
type NameSearchParams struct {
	Keyword      string `form:"keyword"      binding:"max=128"`
	LocationName string `form:"locationName" binding:"max=128"`
	CountryName  string `form:"countryName"  binding:"max=128"`
	Sort         string `form:"sort"         binding:"omitempty,oneof=ASC DESC asc desc"`
	Take         *int   `form:"take"         binding:"omitempty,min=0"`
	Skip         *int   `form:"skip"         binding:"omitempty,min=0"`
}

// CoordSearchParams GET /api/locations/coords
type CoordSearchParams struct {
	Lat    *float64 `form:"lat"    binding:"required,min=-90,max=90"`
	Lon    *float64 `form:"lon"    binding:"required,min=-180,max=180"`
	Method string   `form:"method" binding:"required,oneof=specific range"`
	Range  *float64 `form:"range"  binding:"omitempty,min=0"`
	Take   *int     `form:"take"   binding:"omitempty,min=0"`
	Skip   *int     `form:"skip"   binding:"omitempty,min=0"`
}

// LocationIDParams GET /api/locations/:id
type LocationIDParams struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// NearestParams GET /api/turns/nearest
type NearestParams struct {
	StartPoint string `form:"startPoint" binding:"required,max=255"`
	EndPoint   string `form:"endPoint"   binding:"required,max=255"`
}

// PlanParams GET /api/turns/plans
type PlanParams struct {
	StartNode *int64 `form:"startNode" binding:"required"`
	EndNode   *int64 `form:"endNode"   binding:"required"`
	Type      string `form:"type"      binding:"omitempty,oneof=text line"`
}

// PlanByNameParams GET /api/turns/plans/by-name
type PlanByNameParams struct {
	StartPoint string `form:"startPoint" binding:"required,max=255"`
	EndPoint   string `form:"endPoint"   binding:"required,max=255"`
	Type       string `form:"type"       binding:"omitempty,oneof=text line"`
}

func (p CoordSearchParams) query() model.CoordQuery {
	return model.CoordQuery{
		Lat:    *p.Lat,
		Lon:    *p.Lon,
		Method: model.SearchMethod(p.Method),
		Range:  p.Range,
		Take:   p.Take,
		Skip:   p.Skip,
	}
}

func (p NameSearchParams) query() model.NameQuery {
	sort := model.SortOrder(p.Sort)
	switch p.Sort {
	case "asc":
		sort = model.SortAsc
	case "desc":
		sort = model.SortDesc
	}
	return model.NameQuery{
		Keyword:      p.Keyword,
		LocationName: p.LocationName,
		CountryName:  p.CountryName,
		Sort:         sort,
		Take:         p.Take,
		Skip:         p.Skip,
	}
}

// planType 未指定时默认 text
func planType(s string) model.PlanType {
	if s == "" {
		return model.PlanText
	}
	return model.PlanType(s)
}
