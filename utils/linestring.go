package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"sea-routing/model"
)

// ErrMalformedGeometry 几何文本格式错误
var ErrMalformedGeometry = errors.New("malformed geometry")

var parenGroup = regexp.MustCompile(`\(([^()]*)\)`)

// ParsePairs 将 "lon,lat,lon,lat" 这样的扁平数字列表解析为坐标序列
// 多余或缺失的分隔符都视为格式错误
func ParsePairs(s, sep string) ([]model.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []model.Coordinate{}, nil
	}
	parts := strings.Split(s, sep)
	nums := make([]float64, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty value at position %d", ErrMalformedGeometry, i)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedGeometry, p)
		}
		nums = append(nums, v)
	}
	return PairsFromFloats(nums)
}

// PairsFromFloats 两两取值 (lon, lat) 组成坐标序列
func PairsFromFloats(nums []float64) ([]model.Coordinate, error) {
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of values (%d)", ErrMalformedGeometry, len(nums))
	}
	coords := make([]model.Coordinate, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		coords = append(coords, model.Coordinate{Lon: nums[i], Lat: nums[i+1]})
	}
	return coords, nil
}

// FlattenPairs 是 PairsFromFloats 的逆操作
func FlattenPairs(coords []model.Coordinate) []float64 {
	out := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		out = append(out, c.Lon, c.Lat)
	}
	return out
}

// ParseLineString 解析 "LINESTRING(x1 y1,x2 y2)" 文本
// 没有括号组时返回空序列而不是错误
func ParseLineString(text string) ([]model.Coordinate, error) {
	m := parenGroup.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return []model.Coordinate{}, nil
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return []model.Coordinate{}, nil
	}

	tokens := strings.Split(body, ",")
	coords := make([]model.Coordinate, 0, len(tokens))
	for i, tok := range tokens {
		xy := strings.Fields(tok)
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d values", ErrMalformedGeometry, i, len(xy))
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedGeometry, xy[0])
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedGeometry, xy[1])
		}
		coords = append(coords, model.Coordinate{Lon: x, Lat: y})
	}
	return coords, nil
}

// FormatLineString 输出 LINESTRING 文本, 使用最短的无损浮点格式
func FormatLineString(coords []model.Coordinate) string {
	var b strings.Builder
	b.WriteString("LINESTRING(")
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		writeXY(&b, c)
	}
	b.WriteByte(')')
	return b.String()
}

// FormatPoint 输出 POINT 文本
func FormatPoint(c model.Coordinate) string {
	var b strings.Builder
	b.WriteString("POINT(")
	writeXY(&b, c)
	b.WriteByte(')')
	return b.String()
}

func writeXY(b *strings.Builder, c model.Coordinate) {
	b.WriteString(strconv.FormatFloat(c.Lon, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(c.Lat, 'f', -1, 64))
}

// MergeLines 按顺序把多条线首尾相接合并为一条
// 后一条线的起点与前一条的终点重合时只保留一个
func MergeLines(lines [][]model.Coordinate) []model.Coordinate {
	var merged []model.Coordinate
	for _, line := range lines {
		for i, c := range line {
			if i == 0 && len(merged) > 0 && merged[len(merged)-1] == c {
				continue
			}
			merged = append(merged, c)
		}
	}
	return merged
}

// ToGeoJSON 转为 GeoJSON LineString
func ToGeoJSON(coords []model.Coordinate) *geojson.Geometry {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point(c.XY()))
	}
	return geojson.NewGeometry(ls)
}

// EncodePolyline 编码为 Google encoded polyline (lat, lng 顺序), 便于前端地图绘制
func EncodePolyline(coords []model.Coordinate) string {
	pts := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pts))
}
