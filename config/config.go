// Package config 读取服务的 YAML 调优参数
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sea-routing/model"
)

// Config 配置文件根结构
type Config struct {
	Search Search `yaml:"search"`
	Cache  Cache  `yaml:"cache"`
}

// Search 地点搜索默认值
type Search struct {
	DefaultTake    int                `yaml:"default_take"`
	DefaultRangeKm float64            `yaml:"default_range_km"`
	TargetType     model.LocationType `yaml:"target_type"` // specific 模式匹配的地点类型
}

// Cache 缓存参数, PlanTTL 为 0 表示关闭路径缓存
type Cache struct {
	PlanTTL           time.Duration `yaml:"plan_ttl"`
	LocationCacheSize int           `yaml:"location_cache_size"`
	LocationCacheTTL  time.Duration `yaml:"location_cache_ttl"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Search: Search{
			DefaultTake:    10,
			DefaultRangeKm: 1,
			TargetType:     model.LocationPort,
		},
		Cache: Cache{
			PlanTTL:           10 * time.Minute,
			LocationCacheSize: 1024,
			LocationCacheTTL:  5 * time.Minute,
		},
	}
}

// Load 读取 path 处的 YAML, 未设置的字段保留默认值
// 文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	if c.Search.DefaultTake < 0 {
		return errors.New("search.default_take must not be negative")
	}
	if c.Search.DefaultRangeKm < 0 {
		return errors.New("search.default_range_km must not be negative")
	}
	if c.Search.TargetType != "" && !c.Search.TargetType.Valid() {
		return fmt.Errorf("search.target_type %q is not a known location type", c.Search.TargetType)
	}
	if c.Cache.PlanTTL < 0 || c.Cache.LocationCacheTTL < 0 {
		return errors.New("cache ttl must not be negative")
	}
	return nil
}
