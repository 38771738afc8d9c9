// Package training orchestrates one clustering training run: ingest users
// and gardens, extract and standardize features, select k, fit the final
// clusterer, persist and publish the model. Grounded on
// training_service.py's shape (load users -> extract -> fit -> write
// cluster_id back onto users -> append a training_history row) reimplemented
// with this codebase's tagged-error and pointer-publication conventions.
package training

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/clustermodel"
	"plantgen-backend/internal/events"
	"plantgen-backend/internal/featurecache"
	"plantgen-backend/internal/features"
	"plantgen-backend/internal/kprototypes"
	"plantgen-backend/internal/kselect"
	"plantgen-backend/internal/metrics"
	"plantgen-backend/internal/repository"
)

// Pipeline ties the user/garden provider, the feature cache, the active
// model store, the version index, and the event publisher into one
// training run.
type Pipeline struct {
	provider  repository.UserGardenProvider
	cache     *featurecache.Cache
	store     *clustermodel.Store
	versions  *clustermodel.VersionIndex
	history   *repository.TrainingHistoryLog
	publisher *events.Publisher
	modelDir  string
	cfg       Config
	logger    *zerolog.Logger
	persistMu sync.Mutex
}

func NewPipeline(
	provider repository.UserGardenProvider,
	cache *featurecache.Cache,
	store *clustermodel.Store,
	versions *clustermodel.VersionIndex,
	history *repository.TrainingHistoryLog,
	publisher *events.Publisher,
	modelDir string,
	cfg Config,
	logger *zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		provider:  provider,
		cache:     cache,
		store:     store,
		versions:  versions,
		history:   history,
		publisher: publisher,
		modelDir:  modelDir,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes one full training pass. On any failure before the model is
// persisted, training is considered failed atomically: the store's
// previously active model is left untouched (§7).
func (p *Pipeline) Run(ctx context.Context, rng *rand.Rand, version string) (*clustermodel.ClusterModel, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	users, err := p.provider.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.CatalogUnavailable(err)
	}
	if len(users) < minUsersForTraining {
		return nil, apperrors.InsufficientData(fmt.Sprintf("need at least %d users for clustering, have %d", minUsersForTraining, len(users)))
	}

	start := time.Now()
	raw := make([]features.Vector, 0, len(users))
	for _, u := range users {
		gardenRecords, err := p.provider.GardensByOwner(ctx, u.ID)
		if err != nil {
			return nil, apperrors.CatalogUnavailable(err)
		}
		gardenDocs := make([]features.GardenDoc, len(gardenRecords))
		for i, g := range gardenRecords {
			gardenDocs[i] = g.Doc
		}
		raw = append(raw, features.ExtractRaw(u.ID, u.Doc, gardenDocs))

		if ctx.Err() != nil {
			return nil, apperrors.Cancelled()
		}
	}

	pipeline := &features.Pipeline{}
	transformed := pipeline.FitTransform(rng, raw)

	numeric := make([][]float64, len(transformed))
	categorical := make([][]int, len(transformed))
	for i, t := range transformed {
		numeric[i] = append([]float64(nil), t.Numeric[:]...)
		categorical[i] = []int{objectiveCode(t.Objective), t.Region}
	}

	k := kselect.Select(rng, numeric, categorical, p.cfg.KMin, p.cfg.KMax, p.cfg.SelectionMethod)
	model := kprototypes.Fit(rng, numeric, categorical, k, p.cfg.FinalNInit, 0)
	silhouette := kselect.Silhouette(numeric, model.Labels)

	clusterModel := &clustermodel.ClusterModel{
		Version:          version,
		K:                model.K,
		NumericCentroids: model.NumericCentroids,
		CategoricalModes: model.CategoricalModes,
		Gamma:            model.Gamma,
		ScalerMean:       pipeline.Scaler.Mean,
		ScalerStd:        pipeline.Scaler.Std,
		RegionCentroids:  pipeline.Regions.Centroids,
		FeatureSchema:    append([]string(nil), features.NumericFields[:]...),
		Silhouette:       silhouette,
		FitTimestamp:     timeNow(),
	}

	p.persistMu.Lock()
	defer p.persistMu.Unlock()
	if err := clustermodel.Save(p.modelDir, version, clusterModel); err != nil {
		p.appendHistory(ctx, version, model.K, silhouette, len(users), false, apperrors.KindPersistenceFailure)
		metrics.RecordTraining("failed", time.Since(start), 0, 0)
		return nil, err
	}

	for i, t := range transformed {
		if err := p.provider.UpdateClusterLabel(ctx, t.UserID, model.Labels[i]); err != nil {
			p.logger.Warn().Err(err).Str("userId", t.UserID).Msg("training: failed to persist cluster label")
		}
		p.cache.Set(ctx, t)
	}

	if p.versions != nil {
		if err := p.versions.Record(ctx, clustermodel.VersionRecord{
			Version:      version,
			K:            model.K,
			Silhouette:   silhouette,
			FitTimestamp: clusterModel.FitTimestamp,
		}); err != nil {
			p.logger.Warn().Err(err).Msg("training: failed to record version index entry")
		}
	}

	p.appendHistory(ctx, version, model.K, silhouette, len(users), true, "")
	p.store.Publish(clusterModel)

	if p.publisher != nil {
		p.publisher.TrainingCompleted(events.TrainingCompleted{
			Version:      version,
			K:            model.K,
			Silhouette:   silhouette,
			UserCount:    len(users),
			FitTimestamp: clusterModel.FitTimestamp,
		})
	}

	metrics.RecordTraining("succeeded", time.Since(start), model.K, silhouette)

	p.logger.Info().
		Str("version", version).
		Int("k", model.K).
		Float64("silhouette", silhouette).
		Int("users", len(users)).
		Msg("training: completed")

	return clusterModel, nil
}

func (p *Pipeline) appendHistory(ctx context.Context, version string, k int, silhouette float64, userCount int, succeeded bool, failureKind apperrors.Kind) {
	if p.history == nil {
		return
	}
	entry := repository.TrainingHistoryEntry{
		Version:      version,
		K:            k,
		Silhouette:   silhouette,
		UserCount:    userCount,
		Succeeded:    succeeded,
		FailureKind:  string(failureKind),
		FitTimestamp: timeNow(),
	}
	if err := p.history.Append(ctx, entry); err != nil {
		p.logger.Warn().Err(err).Msg("training: failed to append training history")
	}
}

func timeNow() time.Time {
	return time.Now().UTC()
}
