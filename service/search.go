package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"sea-routing/errs"
	"sea-routing/model"
	"sea-routing/utils"
)

// SearchOptions 搜索默认值
type SearchOptions struct {
	DefaultTake    int
	DefaultRangeKm float64
	TargetType     model.LocationType // specific 模式匹配的地点类型
}

// DefaultSearchOptions 默认 take=10, 半径 1, 目标类型为港口
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{DefaultTake: 10, DefaultRangeKm: 1, TargetType: model.LocationPort}
}

// LocationSearch 地点搜索引擎
type LocationSearch struct {
	store   LocationStore
	opts    SearchOptions
	log     zerolog.Logger
	metrics Recorder
}

// NewLocationSearch 创建地点搜索引擎, rec 可以为 nil
func NewLocationSearch(store LocationStore, opts SearchOptions, log zerolog.Logger, rec Recorder) *LocationSearch {
	if opts.DefaultTake <= 0 {
		opts.DefaultTake = 10
	}
	if opts.DefaultRangeKm <= 0 {
		opts.DefaultRangeKm = 1
	}
	if opts.TargetType == "" {
		opts.TargetType = model.LocationPort
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &LocationSearch{store: store, opts: opts, log: log, metrics: rec}
}

// paging 校验并补全 take/skip
func (s *LocationSearch) paging(op string, take, skip *int) (int, int, error) {
	t, k := s.opts.DefaultTake, 0
	if take != nil {
		if *take < 0 {
			return 0, 0, errs.Validation(op, "take must not be negative")
		}
		t = *take
	}
	if skip != nil {
		if *skip < 0 {
			return 0, 0, errs.Validation(op, "skip must not be negative")
		}
		k = *skip
	}
	return t, k, nil
}

// SearchByCoords 坐标搜索 (specific / range)
func (s *LocationSearch) SearchByCoords(ctx context.Context, q model.CoordQuery) (res []model.CoordResult, err error) {
	const op = "search.coords"
	start := time.Now()
	defer func() { s.metrics.ObserveSearch(string(q.Method), outcome(err), time.Since(start).Seconds()) }()

	center := model.Coordinate{Lat: q.Lat, Lon: q.Lon}
	if !center.Valid() {
		return nil, errs.Validation(op, "invalid coordinates: lat must be in [-90, 90], lon in [-180, 180]")
	}
	take, skip, err := s.paging(op, q.Take, q.Skip)
	if err != nil {
		return nil, err
	}

	switch q.Method {
	case model.SearchSpecific:
		return s.specific(ctx, op, center, take, skip)
	case model.SearchRange:
		radius := s.opts.DefaultRangeKm
		if q.Range != nil {
			if *q.Range < 0 {
				return nil, errs.Validation(op, "range must not be negative")
			}
			radius = *q.Range
		}
		return s.withinRange(ctx, op, center, radius, take, skip)
	default:
		return nil, errs.Validation(op, "unknown method %q", q.Method)
	}
}

func (s *LocationSearch) specific(ctx context.Context, op string, c model.Coordinate, take, skip int) ([]model.CoordResult, error) {
	if take == 0 {
		return []model.CoordResult{}, nil
	}
	locs, _, err := s.store.Search(ctx, model.LocationFilter{
		Exact: &c,
		Type:  s.opts.TargetType,
		Sort:  model.SortDesc,
		Take:  take,
		Skip:  skip,
	})
	if err != nil {
		return nil, s.internal(op, err)
	}

	out := make([]model.CoordResult, 0, len(locs))
	for _, loc := range locs {
		out = append(out, model.CoordResult{Location: loc})
	}
	return out, nil
}

// withinRange 先用平面距离粗筛 (度 vs 公里, 保留原有行为), 再按大圆距离升序排序后分页
func (s *LocationSearch) withinRange(ctx context.Context, op string, c model.Coordinate, radius float64, take, skip int) ([]model.CoordResult, error) {
	locs, _, err := s.store.Search(ctx, model.LocationFilter{Near: &c, Radius: radius})
	if err != nil {
		return nil, s.internal(op, err)
	}

	out := make([]model.CoordResult, 0, len(locs))
	for _, loc := range locs {
		km := utils.GreatCircleDistance(c, loc.Coordinate(), utils.Kilometers)
		miles := utils.KilometersToMiles(km)
		out = append(out, model.CoordResult{Location: loc, DistanceKm: &km, DistanceMiles: &miles})
	}
	slices.SortStableFunc(out, func(a, b model.CoordResult) int {
		switch {
		case *a.DistanceKm < *b.DistanceKm:
			return -1
		case *a.DistanceKm > *b.DistanceKm:
			return 1
		}
		return 0
	})

	if skip >= len(out) {
		return []model.CoordResult{}, nil
	}
	out = out[skip:]
	if len(out) > take {
		out = out[:take]
	}
	return out, nil
}

// SearchByName 按地点名/国家名关键字搜索, 按更新时间排序
func (s *LocationSearch) SearchByName(ctx context.Context, q model.NameQuery) (*model.LocationPage, error) {
	const op = "search.name"
	take, skip, err := s.paging(op, q.Take, q.Skip)
	if err != nil {
		return nil, err
	}

	sort := q.Sort
	switch sort {
	case "":
		sort = model.SortDesc
	case model.SortAsc, model.SortDesc:
	default:
		return nil, errs.Validation(op, "sort must be ASC or DESC")
	}

	page := &model.LocationPage{Take: take, Skip: skip, Locations: []model.Location{}}
	if take == 0 {
		_, count, err := s.store.Search(ctx, model.LocationFilter{
			Keyword: q.Keyword, LocationName: q.LocationName, CountryName: q.CountryName, Take: 1,
		})
		if err != nil {
			return nil, s.internal(op, err)
		}
		page.Count = count
		return page, nil
	}

	locs, count, err := s.store.Search(ctx, model.LocationFilter{
		Keyword:      q.Keyword,
		LocationName: q.LocationName,
		CountryName:  q.CountryName,
		Sort:         sort,
		Take:         take,
		Skip:         skip,
	})
	if err != nil {
		return nil, s.internal(op, err)
	}
	if locs != nil {
		page.Locations = locs
	}
	page.Count = count
	return page, nil
}

// GetByID 按 ID 获取地点
func (s *LocationSearch) GetByID(ctx context.Context, id uint) (*model.Location, error) {
	const op = "location.get"
	loc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.internal(op, err)
	}
	if loc == nil {
		return nil, errs.NotFound(op, errs.Describe(errs.ErrLocationNotFound, "Location %d not found", id))
	}
	return loc, nil
}

func (s *LocationSearch) internal(op string, err error) error {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.log.Error().Err(err).Str("op", op).Msg("location store query failed")
	}
	return errs.Internal(op, err)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return errs.KindOf(err).String()
}
