package clustermodel

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheTTL = 30 * time.Minute

// CentroidCache is a read-through speedup for the recommendation hot path:
// the active model's centroids/modes, keyed by version. A nil client (Redis
// unavailable at startup) degrades every call to a cache miss rather than
// failing the caller — the same tolerance the rest of this codebase applies
// to Redis.
type CentroidCache struct {
	client *redis.Client
}

func NewCentroidCache(client *redis.Client) *CentroidCache {
	return &CentroidCache{client: client}
}

type cachedModel struct {
	NumericCentroids [][]float64 `json:"numericCentroids"`
	CategoricalModes [][]int     `json:"categoricalModes"`
	Gamma            float64     `json:"gamma"`
}

func (c *CentroidCache) Get(ctx context.Context, version string) (*ClusterModel, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(version)).Bytes()
	if err != nil {
		return nil, false
	}
	var cm cachedModel
	if err := json.Unmarshal(data, &cm); err != nil {
		log.Warn().Err(err).Msg("clustermodel: failed to decode cached model, treating as miss")
		return nil, false
	}
	return &ClusterModel{
		Version:          version,
		NumericCentroids: cm.NumericCentroids,
		CategoricalModes: cm.CategoricalModes,
		Gamma:            cm.Gamma,
	}, true
}

func (c *CentroidCache) Set(ctx context.Context, model *ClusterModel) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(cachedModel{
		NumericCentroids: model.NumericCentroids,
		CategoricalModes: model.CategoricalModes,
		Gamma:            model.Gamma,
	})
	if err != nil {
		log.Warn().Err(err).Msg("clustermodel: failed to encode model for cache")
		return
	}
	if err := c.client.Set(ctx, cacheKey(model.Version), data, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("clustermodel: failed to populate cache")
	}
}

func cacheKey(version string) string {
	return "clustermodel:centroids:" + version
}
