// Package featurecache memoizes a user's last-computed, standardized
// feature vector between training runs (§11's home for go-redis on the
// training side, mirroring internal/clustermodel's read-through cache on
// the serving side). A nil or unreachable Redis client degrades every call
// to a cache miss — the same tolerance the rest of this codebase applies.
package featurecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"plantgen-backend/internal/features"
	"plantgen-backend/internal/metrics"
)

const ttl = 45 * 24 * time.Hour

// Cache memoizes features.Transformed by user id.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, userID string) (features.Transformed, bool) {
	if c.client == nil {
		metrics.RecordCacheMiss()
		return features.Transformed{}, false
	}
	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		metrics.RecordCacheMiss()
		return features.Transformed{}, false
	}
	var t features.Transformed
	if err := json.Unmarshal(data, &t); err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("featurecache: failed to decode cached vector, treating as miss")
		metrics.RecordCacheMiss()
		return features.Transformed{}, false
	}
	metrics.RecordCacheHit()
	return t, true
}

func (c *Cache) Set(ctx context.Context, t features.Transformed) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		log.Warn().Err(err).Str("userId", t.UserID).Msg("featurecache: failed to encode vector")
		return
	}
	if err := c.client.Set(ctx, key(t.UserID), data, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("userId", t.UserID).Msg("featurecache: failed to populate cache")
	}
}

func key(userID string) string {
	return "featurecache:vector:" + userID
}
