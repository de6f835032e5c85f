// AngelaMos | 2026
// cache.go

package category

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
	"github.com/carterperez-dev/lifehacking-api/internal/metrics"
)

const (
	listCacheKeyPrefix = "categories:active:"
	listVersionKey     = "categories:active:version"
)

// ListCache holds the public category list. Failures are logged and
// treated as misses; the database stays the source of truth.
//
// Get returns the version the caller must hand back to Set. Invalidate
// moves to a new version, so a Set for a list read before the
// invalidation lands on a key nobody reads.
type ListCache interface {
	Get(ctx context.Context) ([]CategoryResponse, int64, bool)
	Set(ctx context.Context, version int64, categories []CategoryResponse)
	Invalidate(ctx context.Context)
}

type redisListCache struct {
	redis *core.Redis
	ttl   time.Duration
}

func NewRedisListCache(redis *core.Redis, ttl time.Duration) ListCache {
	return &redisListCache{redis: redis, ttl: ttl}
}

func listCacheKey(version int64) string {
	return listCacheKeyPrefix + strconv.FormatInt(version, 10)
}

func (c *redisListCache) Get(ctx context.Context) ([]CategoryResponse, int64, bool) {
	version, err := c.redis.Client.Get(ctx, listVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "category cache version read failed", "error", err)
		metrics.RecordCacheLookup("categories", false)
		return nil, -1, false
	}

	var categories []CategoryResponse
	found, err := c.redis.GetJSON(ctx, listCacheKey(version), &categories)
	if err != nil {
		slog.WarnContext(ctx, "category cache read failed", "error", err)
		found = false
	}

	metrics.RecordCacheLookup("categories", found)
	return categories, version, found
}

func (c *redisListCache) Set(ctx context.Context, version int64, categories []CategoryResponse) {
	if version < 0 {
		return
	}
	if err := c.redis.SetJSON(ctx, listCacheKey(version), categories, c.ttl); err != nil {
		slog.WarnContext(ctx, "category cache write failed", "error", err)
	}
}

func (c *redisListCache) Invalidate(ctx context.Context) {
	version, err := c.redis.Client.Incr(ctx, listVersionKey).Result()
	if err != nil {
		slog.WarnContext(ctx, "category cache invalidation failed", "error", err)
		return
	}

	if err := c.redis.Delete(ctx, listCacheKey(version-1)); err != nil {
		slog.WarnContext(ctx, "category cache cleanup failed", "error", err)
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]CategoryResponse, int64, bool) { return nil, -1, false }
func (noopCache) Set(context.Context, int64, []CategoryResponse)        {}
func (noopCache) Invalidate(context.Context)                            {}
