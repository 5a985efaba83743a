// Package cache keeps flattened mark grids in Redis. Every method is a no-op
// on a disabled cache, so callers never branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
)

const (
	keyPrefix     = "marksheet:grid:"
	versionPrefix = "marksheet:gridver:"
)

// NoVersion is returned by Version when the grid must not be cached
const NoVersion int64 = -1

// Connect opens a Redis client. An empty addr disables caching and returns
// a nil client.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// GridCache caches one grid per student
type GridCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewGridCache wraps rdb; a nil rdb yields a disabled cache
func NewGridCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *GridCache {
	return &GridCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Enabled reports whether a Redis client is attached
func (c *GridCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func key(studentID int64) string {
	return keyPrefix + strconv.FormatInt(studentID, 10)
}

func versionKey(studentID int64) string {
	return versionPrefix + strconv.FormatInt(studentID, 10)
}

// Get returns the cached grid. Redis failures are logged and reported as a miss.
func (c *GridCache) Get(ctx context.Context, studentID int64) (models.MarkGrid, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(studentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error().Err(err).Int64("studentID", studentID).Msg("Redis GET failed")
		}
		return nil, false
	}

	var flat map[string]*int
	if err := json.Unmarshal(raw, &flat); err != nil {
		c.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Discarding unreadable cached grid")
		return nil, false
	}
	grid, err := models.UnflattenGrid(flat)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Discarding unreadable cached grid")
		return nil, false
	}
	return grid, true
}

// Version returns the invalidation counter of a student's grid. Callers read
// it before loading the grid from storage and hand it back to Set.
func (c *GridCache) Version(ctx context.Context, studentID int64) int64 {
	if !c.Enabled() {
		return NoVersion
	}

	v, err := c.rdb.Get(ctx, versionKey(studentID)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0
	case err != nil:
		c.logger.Error().Err(err).Int64("studentID", studentID).Msg("Redis GET version failed")
		return NoVersion
	}
	return v
}

// Set stores the grid under the configured TTL, unless the grid was
// invalidated after version was read. A grid loaded before a commit is never
// written back over it.
func (c *GridCache) Set(ctx context.Context, studentID, version int64, grid models.MarkGrid) {
	if !c.Enabled() || version == NoVersion {
		return
	}

	raw, err := json.Marshal(grid.Flatten())
	if err != nil {
		c.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to encode grid for cache")
		return
	}

	vkey := versionKey(studentID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleGrid
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(studentID), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGrid), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug().Int64("studentID", studentID).Msg("Skipping cache write of a superseded grid")
	default:
		c.logger.Error().Err(err).Int64("studentID", studentID).Msg("Redis SET failed")
	}
}

var errStaleGrid = errors.New("grid invalidated since it was read")

// Invalidate drops the cached grids of the given students and bumps their
// versions, so reads already in flight do not repopulate them.
func (c *GridCache) Invalidate(ctx context.Context, studentIDs ...int64) {
	if !c.Enabled() || len(studentIDs) == 0 {
		return
	}

	keys := make([]string, len(studentIDs))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range studentIDs {
			keys[i] = key(id)
			pipe.Incr(ctx, versionKey(id))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.logger.Error().Err(err).Int("count", len(keys)).Msg("Redis invalidation failed")
	}
}
