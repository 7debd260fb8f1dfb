package model

import (
	"math"

	"github.com/golang/geo/s2"
)

// Coordinate 代表一个经纬度点 (WGS84)
// 序列化时始终为 (lon, lat) 顺序, 与 LINESTRING 文本一致
type Coordinate struct {
	Lat float64 `json:"lat"` // 纬度
	Lon float64 `json:"lon"` // 经度
}

// Valid 判断坐标是否有限且在合法范围内
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return s2.LatLngFromDegrees(c.Lat, c.Lon).IsValid()
}

// XY 返回 (x, y) = (lon, lat)
func (c Coordinate) XY() [2]float64 {
	return [2]float64{c.Lon, c.Lat}
}
