package recommend

import (
	"context"
	"sort"

	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/features"
)

// Source narrows the general user/garden provider (§6) to exactly what the
// scorer needs: every active, other-owned garden in a cluster, already
// carrying its owner's fitted feature vector so the scorer never recomputes
// the pipeline per candidate.
type Source interface {
	ActiveGardensInCluster(ctx context.Context, label int, excludeUserID string) ([]GardenRecord, error)
}

// Scorer ranks candidate gardens for a target user within their cluster.
type Scorer struct {
	source Source
}

func NewScorer(source Source) *Scorer {
	return &Scorer{source: source}
}

// TopN returns up to n recommendations for targetUser (label and feature
// vector already resolved by the caller from the active ClusterModel; gamma
// is the same clusterer-fitted weight the active model uses for its own
// categorical distance term), ranked by score descending. Ties break by
// garden id for determinism.
func (s *Scorer) TopN(ctx context.Context, targetUserID string, target features.Transformed, clusterLabel int, gamma float64, n int) ([]Recommendation, error) {
	if n <= 0 {
		return nil, apperrors.InvalidInput("n", "must be positive")
	}

	candidates, err := s.source.ActiveGardensInCluster(ctx, clusterLabel, targetUserID)
	if err != nil {
		return nil, apperrors.CatalogUnavailable(err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.EmptyResult("no active gardens in this cluster from other users")
	}

	scored := make([]Recommendation, len(candidates))
	for i, c := range candidates {
		scored[i] = Recommendation{
			GardenID:           c.GardenID,
			Name:               c.Name,
			Description:        c.Description,
			WeeklyWaterL:       c.WeeklyWaterL,
			MaintenanceMinutes: c.MaintenanceMinutes,
			FitnessProxy:       c.FitnessProxy,
			Score:              score(target, c.OwnerFeature, gamma),
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].GardenID < scored[j].GardenID
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}
