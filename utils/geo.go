package utils

import (
	"math"

	"sea-routing/model"
)

// Unit 距离单位
type Unit int

const (
	Kilometers Unit = iota
	Miles
)

// 换算系数
const (
	NauticalMilesPerDegree = 60.0
	StatuteMilesPerNautic  = 1.1515
	KilometersPerMile      = 1.609344

	// MileFactor 输出兼容用的公里→英里系数 (不是精确的 0.621371)
	MileFactor = 0.62
)

// DegreesToRadians 角度转弧度
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// RadiansToDegrees 弧度转角度
func RadiansToDegrees(r float64) float64 {
	return r * 180.0 / math.Pi
}

// GreatCircleDistance 球面余弦定理计算两点间大圆距离
// acos 的参数在 a == b 时可能因浮点误差略大于 1, 需要先截断到 [-1, 1]
func GreatCircleDistance(a, b model.Coordinate, unit Unit) float64 {
	lat1 := DegreesToRadians(a.Lat)
	lat2 := DegreesToRadians(b.Lat)
	dLon := DegreesToRadians(a.Lon - b.Lon)

	cos := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	cos = math.Max(-1, math.Min(1, cos))

	dist := RadiansToDegrees(math.Acos(cos)) * NauticalMilesPerDegree * StatuteMilesPerNautic
	if unit == Kilometers {
		return dist * KilometersPerMile
	}
	return dist
}

// PlanarDistance 经纬度平面欧氏距离 (单位: 度), 用于半径搜索的粗筛
func PlanarDistance(a, b model.Coordinate) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
}

// KilometersToMiles 按兼容系数换算英里
func KilometersToMiles(km float64) float64 {
	return km * MileFactor
}
