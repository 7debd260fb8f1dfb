package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea-routing/model"
)

func newMini(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	c, err := NewRedisPlanCache(ctx, mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisPlanCache_SetGet(t *testing.T) {
	c, _ := newMini(t)
	ctx := context.Background()

	plan := &model.RoutePlan{
		Type: model.PlanLine, StartNode: 1, EndNode: 3, Cost: 8,
		Line: "LINESTRING(-6 50,-5 50,-4 50)", Polyline: "_ibE~oqd@",
	}
	require.NoError(t, c.Set(ctx, "plan:line:1", plan, time.Minute))

	got, ok, err := c.Get(ctx, "plan:line:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, got)
}

func TestRedisPlanCache_Miss(t *testing.T) {
	c, _ := newMini(t)

	got, ok, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisPlanCache_TTL(t *testing.T) {
	c, mr := newMini(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &model.RoutePlan{Type: model.PlanText}, 30*time.Second))
	assert.Equal(t, 30*time.Second, mr.TTL("k"))

	mr.FastForward(31 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPlanCache_CorruptValue(t *testing.T) {
	c, mr := newMini(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	_, ok, err := c.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisPlanCache_Errors(t *testing.T) {
	_, err := NewRedisPlanCache(context.Background(), "")
	assert.Error(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err = NewRedisPlanCache(ctx, addr)
	assert.Error(t, err)
}
