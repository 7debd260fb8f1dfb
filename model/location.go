package model

import "time"

// LocationType 地点类型
type LocationType string

const (
	LocationCountry LocationType = "country"
	LocationCity    LocationType = "city"
	LocationPort    LocationType = "port"
	LocationScene   LocationType = "scene"
	LocationTurn    LocationType = "turn"
)

// Valid 判断地点类型是否为已知枚举
func (t LocationType) Valid() bool {
	switch t {
	case LocationCountry, LocationCity, LocationPort, LocationScene, LocationTurn:
		return true
	}
	return false
}

// Country 国家 (由导入流程维护, 核心只读)
type Country struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Code string `json:"code" gorm:"uniqueIndex;not null"`
}

// Location 对应一个命名地点 (港口、城市、景点...)
type Location struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"locationName" gorm:"column:location_name;uniqueIndex;not null"`
	Lat       float64      `json:"lat" gorm:"not null"`
	Lon       float64      `json:"lon" gorm:"not null"`
	Type      LocationType `json:"type" gorm:"type:varchar(16);index;not null"`
	CountryID *uint        `json:"-"`
	Country   *Country     `json:"country,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Coordinate 返回地点坐标
func (l Location) Coordinate() Coordinate {
	return Coordinate{Lat: l.Lat, Lon: l.Lon}
}

// CountryName 返回国家名称, 没有关联国家时为空
func (l Location) CountryName() string {
	if l.Country == nil {
		return ""
	}
	return l.Country.Name
}

// SearchMethod 坐标搜索方式
type SearchMethod string

const (
	SearchSpecific SearchMethod = "specific" // 精确坐标匹配
	SearchRange    SearchMethod = "range"    // 半径范围搜索
)

// SortOrder 按更新时间排序的方向
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// LocationFilter 传给存储层的结构化查询条件 (替代拼接 SQL)
//
// Exact 与 Near 互斥; Near 使用平面预筛选 sqrt(Δlat²+Δlon²) < Radius.
// Take 为 0 表示不分页.
type LocationFilter struct {
	Exact        *Coordinate
	Near         *Coordinate
	Radius       float64
	Type         LocationType
	Keyword      string // 匹配地点名或国家名
	LocationName string
	CountryName  string
	Sort         SortOrder
	Take         int
	Skip         int
}

// CoordQuery 坐标搜索请求, 指针字段为 nil 表示未设置
type CoordQuery struct {
	Lat    float64
	Lon    float64
	Method SearchMethod
	Range  *float64
	Take   *int
	Skip   *int
}

// CoordResult 坐标搜索结果, 距离只在 range 模式下出现
type CoordResult struct {
	Location
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
}

// NameQuery 名称/国家关键字搜索请求
type NameQuery struct {
	Keyword      string
	LocationName string
	CountryName  string
	Sort         SortOrder
	Take         *int
	Skip         *int
}

// LocationPage 分页结果
type LocationPage struct {
	Locations []Location `json:"locations"`
	Take      int        `json:"take"`
	Skip      int        `json:"skip"`
	Count     int64      `json:"count"`
}
