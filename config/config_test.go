package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea-routing/model"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	path := write(t, `
search:
  default_range_km: 2.5
  target_type: city
cache:
  plan_ttl: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Search.DefaultTake)
	assert.InDelta(t, 2.5, cfg.Search.DefaultRangeKm, 0)
	assert.Equal(t, model.LocationCity, cfg.Search.TargetType)
	assert.Equal(t, 30*time.Second, cfg.Cache.PlanTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.LocationCacheTTL)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(write(t, "search: [1, 2"))
	assert.Error(t, err)

	_, err = Load(write(t, "search:\n  target_type: volcano\n"))
	assert.ErrorContains(t, err, "volcano")

	_, err = Load(write(t, "search:\n  default_take: -1\n"))
	assert.Error(t, err)
}
