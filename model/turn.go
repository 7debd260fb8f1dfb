package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/paulmach/orb/geojson"
)

// Turn 航线图中的一条有向边, 代价为 Length (公里)
type Turn struct {
	ID       int64           `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name"`
	Coords   pq.Float64Array `json:"-" gorm:"type:float8[];not null"` // 扁平的 lon,lat,lon,lat...
	Length   float64         `json:"length"`
	FromNode int64           `json:"fromnode" gorm:"column:fromnode;index"`
	ToNode   int64           `json:"tonode" gorm:"column:tonode;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// --- 下面字段不入库, 加载后由 Coords 解码 ---
	Path []Coordinate `json:"-" gorm:"-"`
}

// NearestNode 距离某地点最近的图上点
type NearestNode struct {
	DistanceMeters float64    `json:"distance"`
	EdgeID         int64      `json:"id"`
	FromNode       int64      `json:"fromnode"`
	ToNode         int64      `json:"tonode"`
	Point          string     `json:"point"` // POINT(x y)
	Matched        Coordinate `json:"-"`
}

// Path 最短路径搜索的原始结果
type Path struct {
	Turns []*Turn
	Cost  float64
}

// PlanType 路径渲染方式
type PlanType string

const (
	PlanText PlanType = "text" // 逐段输出 LINESTRING
	PlanLine PlanType = "line" // 合并为一条线
)

// Valid 判断渲染方式是否已知
func (p PlanType) Valid() bool {
	return p == PlanText || p == PlanLine
}

// Segment 路径中的一段 (text 模式)
type Segment struct {
	Seq         int               `json:"path_seq"`
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Length      float64           `json:"length"`
	FromNode    int64             `json:"fromnode"`
	ToNode      int64             `json:"tonode"`
	Cost        float64           `json:"cost"`
	AggCost     float64           `json:"agg_cost"`     // 到达该段起点的累计代价
	RouteLength float64           `json:"route_length"` // 包含该段在内的累计长度
	Geom        string            `json:"l_str"`
	LineString  *geojson.Geometry `json:"lineString,omitempty"`
}

// RoutePlan 路径规划结果
type RoutePlan struct {
	Type       PlanType          `json:"type"`
	StartNode  int64             `json:"startNode"`
	EndNode    int64             `json:"endNode"`
	Cost       float64           `json:"cost"`
	Segments   []Segment         `json:"segments,omitempty"`
	Line       string            `json:"l_str,omitempty"`
	LineString *geojson.Geometry `json:"lineString,omitempty"`
	Polyline   string            `json:"polyline,omitempty"`
}
