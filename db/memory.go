package db

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"sea-routing/model"
	"sea-routing/utils"
)

// MemoryLocationStore 内存中的地点存储, 用于测试和本地调试
// 语义与 LocationRepository 一致 (ILIKE 对应大小写不敏感的子串匹配)
type MemoryLocationStore struct {
	locations []model.Location
}

// NewMemoryLocationStore 创建内存地点存储
func NewMemoryLocationStore(locs ...model.Location) *MemoryLocationStore {
	return &MemoryLocationStore{locations: slices.Clone(locs)}
}

// FindByName 按名称查找
func (s *MemoryLocationStore) FindByName(ctx context.Context, name string) (*model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range s.locations {
		if s.locations[i].Name == name {
			loc := s.locations[i]
			return &loc, nil
		}
	}
	return nil, nil
}

// FindByID 按 ID 查找
func (s *MemoryLocationStore) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range s.locations {
		if s.locations[i].ID == id {
			loc := s.locations[i]
			return &loc, nil
		}
	}
	return nil, nil
}

// Search 按过滤条件查询
func (s *MemoryLocationStore) Search(ctx context.Context, f model.LocationFilter) ([]model.Location, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var out []model.Location
	for _, loc := range s.locations {
		if matches(loc, f) {
			out = append(out, loc)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Location) int {
		c := cmp.Or(a.UpdatedAt.Compare(b.UpdatedAt), cmp.Compare(a.ID, b.ID))
		if f.Sort == model.SortAsc {
			return c
		}
		return -c
	})

	count := int64(len(out))
	if f.Skip > 0 {
		out = out[min(f.Skip, len(out)):]
	}
	if f.Take > 0 && len(out) > f.Take {
		out = out[:f.Take]
	}
	return out, count, nil
}

func matches(loc model.Location, f model.LocationFilter) bool {
	if f.Exact != nil && (loc.Lat != f.Exact.Lat || loc.Lon != f.Exact.Lon) {
		return false
	}
	if f.Near != nil && !(utils.PlanarDistance(loc.Coordinate(), *f.Near) < f.Radius) {
		return false
	}
	if f.Type != "" && loc.Type != f.Type {
		return false
	}
	if f.Keyword != "" && !containsFold(loc.Name, f.Keyword) && !containsFold(loc.CountryName(), f.Keyword) {
		return false
	}
	if f.LocationName != "" && !containsFold(loc.Name, f.LocationName) {
		return false
	}
	if f.CountryName != "" && !containsFold(loc.CountryName(), f.CountryName) {
		return false
	}
	return true
}

// containsFold 大小写不敏感的子串匹配
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
