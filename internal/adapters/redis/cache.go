package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"appstore_reviews/internal/adapters/observability"
)

// Cache holds app metadata between scrape runs so repeated invocations
// against the same app skip the catalog metadata call while the entry is
// fresh. Review pages are never cached: a scrape always refetches them.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func ratingCountKey(appID int64) string {
	return fmt.Sprintf("app:%d:rating_count", appID)
}

func (r *Cache) GetRatingCount(ctx context.Context, appID int64) (int, bool, error) {
	n, err := r.c.Get(ctx, ratingCountKey(appID)).Int()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	observability.ObserveCache("redis", "hit")
	return n, true, nil
}

func (r *Cache) SetRatingCount(ctx context.Context, appID int64, count, ttlSec int) error {
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, ratingCountKey(appID), count, time.Duration(ttlSec)*time.Second).Err()
}
