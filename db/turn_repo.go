package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sea-routing/algo"
	"sea-routing/model"
	"sea-routing/utils"
)

// TurnRepository 航线边存储
type TurnRepository struct {
	db *gorm.DB
}

// NewTurnRepository 创建航线边存储
func NewTurnRepository(gdb *gorm.DB) *TurnRepository {
	return &TurnRepository{db: gdb}
}

// LoadTurns 读取全部边并解码几何
func (r *TurnRepository) LoadTurns(ctx context.Context) ([]model.Turn, error) {
	var turns []model.Turn
	if err := r.db.WithContext(ctx).Order("id").Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}
	if err := DecodePaths(turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// LoadGraph 从数据库构建内存图
func (r *TurnRepository) LoadGraph(ctx context.Context) (*algo.Graph, error) {
	turns, err := r.LoadTurns(ctx)
	if err != nil {
		return nil, err
	}
	return algo.NewGraph(turns), nil
}

// DecodePaths 把扁平坐标数组解码为坐标序列, 少于两个点的边视为数据错误
func DecodePaths(turns []model.Turn) error {
	for i := range turns {
		path, err := utils.PairsFromFloats(turns[i].Coords)
		if err != nil {
			return fmt.Errorf("turn %d geometry: %w", turns[i].ID, err)
		}
		if len(path) < 2 {
			return fmt.Errorf("turn %d geometry: %w: need at least 2 points, got %d",
				turns[i].ID, utils.ErrMalformedGeometry, len(path))
		}
		turns[i].Path = path
	}
	return nil
}
