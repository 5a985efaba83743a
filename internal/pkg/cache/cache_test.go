package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
)

func newTestCache(t *testing.T) (*GridCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewGridCache(rdb, time.Minute, zerolog.Nop()), mr
}

func TestGridCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	grid := models.MarkGrid{{ExamType: models.ExamUnit1, Subject: models.SubjectMath}: models.IntPtr(80)}
	c.Set(ctx, 1, c.Version(ctx, 1), grid)
	assert.True(t, mr.Exists("marksheet:grid:1"))
	assert.Equal(t, time.Minute, mr.TTL("marksheet:grid:1"))

	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, grid, got)

	c.Invalidate(ctx, 1, 2)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Version(ctx, 1))
	assert.Equal(t, int64(1), c.Version(ctx, 2))
}

func TestGridCacheSkipsSupersededWrite(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	stale := models.MarkGrid{{ExamType: models.ExamUnit1, Subject: models.SubjectMath}: nil}

	version := c.Version(ctx, 3)
	assert.Zero(t, version)
	c.Invalidate(ctx, 3)

	c.Set(ctx, 3, version, stale)
	assert.False(t, mr.Exists("marksheet:grid:3"))

	c.Set(ctx, 3, c.Version(ctx, 3), stale)
	assert.True(t, mr.Exists("marksheet:grid:3"))
}

func TestGridCacheIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("marksheet:grid:5", "not json"))
	_, ok := c.Get(ctx, 5)
	assert.False(t, ok)

	require.NoError(t, mr.Set("marksheet:grid:6", `{"unit9_math":1}`))
	_, ok = c.Get(ctx, 6)
	assert.False(t, ok)
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	var nilCache *GridCache
	assert.False(t, nilCache.Enabled())

	c := NewGridCache(nil, time.Minute, zerolog.Nop())
	assert.Equal(t, NoVersion, c.Version(ctx, 1))
	c.Set(ctx, 1, 0, models.MarkGrid{})
	c.Invalidate(ctx, 1)
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	rdb, err := Connect(ctx, "", "", 0)
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NotNil(t, rdb)
	_ = rdb.Close()
}
