// Package scheduler runs the two periodic jobs (§4.8): a monthly retrain and
// a weekly recommendation broadcast, each single-instance (an overlapping
// trigger is skipped, never queued). Built on robfig/cron/v3, with
// cron.SkipIfStillRunning supplying the single-instance guard.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"plantgen-backend/internal/clustermodel"
	"plantgen-backend/internal/events"
	"plantgen-backend/internal/featurecache"
	"plantgen-backend/internal/metrics"
	"plantgen-backend/internal/notify"
	"plantgen-backend/internal/recommend"
	"plantgen-backend/internal/repository"
	"plantgen-backend/internal/training"
)

const recommendationsPerBroadcast = 5

// errNoPublishedModel reports that a broadcast was requested before any
// training run has published a model to serve from.
var errNoPublishedModel = errors.New("scheduler: no trained model published yet")

// Scheduler owns the cron runtime and the collaborators its two jobs call.
type Scheduler struct {
	cron      *cron.Cron
	pipeline  *training.Pipeline
	scorer    *recommend.Scorer
	cache     *featurecache.Cache
	store     *clustermodel.Store
	provider  repository.UserGardenProvider
	notifier  notify.Notifier
	publisher *events.Publisher
	logger    *zerolog.Logger
}

func New(
	pipeline *training.Pipeline,
	scorer *recommend.Scorer,
	cache *featurecache.Cache,
	store *clustermodel.Store,
	provider repository.UserGardenProvider,
	notifier notify.Notifier,
	publisher *events.Publisher,
	logger *zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		pipeline:  pipeline,
		scorer:    scorer,
		cache:     cache,
		store:     store,
		provider:  provider,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// RetrainSpec builds a cron expression for a monthly retrain at the given
// day-of-month and hour.
func RetrainSpec(dayOfMonth, hour int) string {
	return fmt.Sprintf("0 %d %d * *", hour, dayOfMonth)
}

// BroadcastSpec builds a cron expression for a weekly broadcast at the
// given day-of-week (0=Sunday) and hour.
func BroadcastSpec(dayOfWeek, hour int) string {
	return fmt.Sprintf("0 %d * * %d", hour, dayOfWeek)
}

// Start registers both jobs and starts the cron runtime.
func (s *Scheduler) Start(retrainSpec, broadcastSpec string) error {
	if _, err := s.cron.AddFunc(retrainSpec, s.runRetrain); err != nil {
		return fmt.Errorf("scheduler: add retrain job: %w", err)
	}
	if _, err := s.cron.AddFunc(broadcastSpec, s.runBroadcast); err != nil {
		return fmt.Errorf("scheduler: add broadcast job: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runRetrain() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if _, err := s.TriggerRetrain(ctx); err != nil {
		s.logger.Error().Err(err).Msg("scheduler: retrain job failed")
	}
}

func (s *Scheduler) runBroadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.TriggerBroadcast(ctx); err != nil {
		s.logger.Error().Err(err).Msg("scheduler: broadcast job failed")
	}
}

// TriggerRetrain runs one training pass immediately, outside the monthly
// cron schedule (§4.8's "on demand" ingestion), returning the fitted model
// so an admin-triggered HTTP call can report on it synchronously.
func (s *Scheduler) TriggerRetrain(ctx context.Context) (*clustermodel.ClusterModel, error) {
	version := time.Now().UTC().Format("20060102T150405")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return s.pipeline.Run(ctx, rng, version)
}

// TriggerBroadcast runs one recommendation broadcast immediately, returning
// the number of users notified.
func (s *Scheduler) TriggerBroadcast(ctx context.Context) (int, error) {
	users, err := s.provider.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("scheduler: list users: %w", err)
	}

	model := s.store.Load()
	if model == nil {
		return 0, errNoPublishedModel
	}

	notified := 0
	for _, u := range users {
		if u.PushToken == "" || !u.HasLabel {
			continue
		}
		target, ok := s.cache.Get(ctx, u.ID)
		if !ok {
			continue
		}

		recs, err := s.scorer.TopN(ctx, u.ID, target, u.ClusterLabel, model.Gamma, recommendationsPerBroadcast)
		if err != nil {
			continue
		}
		metrics.RecordRecommendationsServed(len(recs))

		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.GardenID
		}
		if err := s.notifier.Send(ctx, u.ID, "New garden recommendations", "We found gardens like yours", map[string]string{
			"count": fmt.Sprintf("%d", len(recs)),
		}); err != nil {
			s.logger.Warn().Err(err).Str("userId", u.ID).Msg("scheduler: push notification failed")
		}
		if s.publisher != nil {
			s.publisher.RecommendationReady(events.RecommendationReady{UserID: u.ID, RecommendedIDs: ids})
		}
		notified++
	}
	return notified, nil
}
