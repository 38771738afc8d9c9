package repository

import (
	"context"

	"plantgen-backend/internal/featurecache"
	"plantgen-backend/internal/recommend"
)

// RecommendSource adapts a UserGardenProvider and the feature-vector cache
// into recommend.Source: every other active garden owned by a member of the
// given cluster, carrying that owner's last-cached standardized feature
// vector. A candidate whose owner has no cached vector (never trained over,
// or the cache evicted it) is skipped rather than failing the whole call —
// the same degrade-on-miss rule the cache itself follows.
type RecommendSource struct {
	provider UserGardenProvider
	cache    *featurecache.Cache
}

func NewRecommendSource(provider UserGardenProvider, cache *featurecache.Cache) *RecommendSource {
	return &RecommendSource{provider: provider, cache: cache}
}

func (s *RecommendSource) ActiveGardensInCluster(ctx context.Context, label int, excludeUserID string) ([]recommend.GardenRecord, error) {
	members, err := s.provider.ListUsersByClusterLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	var out []recommend.GardenRecord
	for _, member := range members {
		if member.ID == excludeUserID {
			continue
		}
		feature, ok := s.cache.Get(ctx, member.ID)
		if !ok {
			continue
		}
		gardens, err := s.provider.GardensByOwner(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range gardens {
			if !g.Active {
				continue
			}
			out = append(out, recommend.GardenRecord{
				GardenID:           g.ID,
				OwnerID:            g.OwnerID,
				Name:               g.Name,
				Description:        g.Description,
				WeeklyWaterL:       asFloat(g.Doc["weeklyWaterLiters"]),
				MaintenanceMinutes: asFloat(g.Doc["maintenanceMinutes"]),
				FitnessProxy:       asFloat(g.Doc["fitness"]),
				OwnerFeature:       feature,
			})
		}
	}
	return out, nil
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
