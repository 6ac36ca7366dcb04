package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"optiroute/internal/domain"
	"optiroute/internal/platform/obs"
)

const defaultRecentKey = "optiroute:recent_routes"

// RedisRouteCache is a Redis-backed implementation of the RouteCache
// port. Routes are kept in a capped list, newest first.
type RedisRouteCache struct {
	Client *redis.Client
	Key    string
	Max    int64
}

func NewRedisRouteCache(client *redis.Client, max int64) *RedisRouteCache {
	if max <= 0 {
		max = 50
	}
	return &RedisRouteCache{Client: client, Key: defaultRecentKey, Max: max}
}

// Push a route onto the recent list and trim it to the cap.
func (c *RedisRouteCache) PushRoute(ctx context.Context, result domain.RouteResult) (err error) {
	defer obs.Time(ctx, "route.cache.push")(&err)

	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("push route: encode result: %w", err)
	}

	pipe := c.Client.TxPipeline()
	pipe.LPush(ctx, c.Key, payload)
	pipe.LTrim(ctx, c.Key, 0, c.Max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push route: redis pipeline: %w", err)
	}

	return nil
}

// Return up to n recent routes, newest first.
func (c *RedisRouteCache) RecentRoutes(ctx context.Context, n int) (_ []domain.RouteResult, err error) {
	defer obs.Time(ctx, "route.cache.recent")(&err)

	if c.Client == nil {
		return nil, errors.New("route cache: redis client is nil")
	}
	if n <= 0 {
		n = 10
	}

	raw, err := c.Client.LRange(ctx, c.Key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent routes: redis lrange: %w", err)
	}

	results := make([]domain.RouteResult, 0, len(raw))
	for i, item := range raw {
		var r domain.RouteResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("recent routes: decode item #%d: %w", i, err)
		}
		results = append(results, r)
	}

	return results, nil
}
