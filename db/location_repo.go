package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"sea-routing/model"
)

// LocationRepository 基于 gorm 的地点存储, 所有条件都走参数化查询
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点存储
func NewLocationRepository(gdb *gorm.DB) *LocationRepository {
	return &LocationRepository{db: gdb}
}

// FindByName 按名称查找, 不存在时返回 nil, nil
func (r *LocationRepository) FindByName(ctx context.Context, name string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).Joins("Country").Where("locations.location_name = ?", name).Take(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by name: %w", err)
	}
	return &loc, nil
}

// FindByID 按 ID 查找, 不存在时返回 nil, nil
func (r *LocationRepository) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).Joins("Country").Where("locations.id = ?", id).Take(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return &loc, nil
}

// Search 按过滤条件查询, 返回当前页和总数
func (r *LocationRepository) Search(ctx context.Context, f model.LocationFilter) ([]model.Location, int64, error) {
	tx := r.db.WithContext(ctx)

	var count int64
	if err := r.filtered(tx, f).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	q := r.filtered(tx, f).Order(orderClause(f.Sort))
	if f.Take > 0 {
		q = q.Limit(f.Take)
	}
	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}

	var locs []model.Location
	if err := q.Preload("Country").Find(&locs).Error; err != nil {
		return nil, 0, fmt.Errorf("search locations: %w", err)
	}
	return locs, count, nil
}

func (r *LocationRepository) filtered(tx *gorm.DB, f model.LocationFilter) *gorm.DB {
	q := tx.Model(&model.Location{}).Joins("LEFT JOIN countries ON countries.id = locations.country_id")
	if f.Exact != nil {
		q = q.Where("locations.lat = ? AND locations.lon = ?", f.Exact.Lat, f.Exact.Lon)
	}
	if f.Near != nil {
		q = q.Where("sqrt(power(locations.lat - ?, 2) + power(locations.lon - ?, 2)) < ?",
			f.Near.Lat, f.Near.Lon, f.Radius)
	}
	if f.Type != "" {
		q = q.Where("locations.type = ?", f.Type)
	}
	if f.Keyword != "" {
		kw := likePattern(f.Keyword)
		q = q.Where("(locations.location_name ILIKE ? OR countries.name ILIKE ?)", kw, kw)
	}
	if f.LocationName != "" {
		q = q.Where("locations.location_name ILIKE ?", likePattern(f.LocationName))
	}
	if f.CountryName != "" {
		q = q.Where("countries.name ILIKE ?", likePattern(f.CountryName))
	}
	return q
}

func orderClause(s model.SortOrder) string {
	if s == model.SortAsc {
		return "locations.updated_at ASC, locations.id ASC"
	}
	return "locations.updated_at DESC, locations.id DESC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern 转义通配符后包成 %kw%
func likePattern(kw string) string {
	return "%" + likeEscaper.Replace(kw) + "%"
}
