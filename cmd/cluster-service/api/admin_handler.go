package api

import (
	"context"
	"net/http"

	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/clustermodel"
	"plantgen-backend/internal/logging"
	"plantgen-backend/internal/repository"
)

// Retrainer is the subset of *scheduler.Scheduler the admin handler needs to
// trigger a training run outside the monthly cron schedule.
type Retrainer interface {
	TriggerRetrain(ctx context.Context) (*clustermodel.ClusterModel, error)
}

// Broadcaster is the subset of *scheduler.Scheduler the admin handler needs
// to trigger a recommendation broadcast outside the weekly cron schedule.
type Broadcaster interface {
	TriggerBroadcast(ctx context.Context) (int, error)
}

// ModelStore narrows *clustermodel.Store to what the status/clusters
// endpoints read.
type ModelStore interface {
	Load() *clustermodel.ClusterModel
}

// VersionLister narrows *clustermodel.VersionIndex to what the status
// endpoint reports.
type VersionLister interface {
	List(ctx context.Context) ([]clustermodel.VersionRecord, error)
}

// HistoryReader narrows *repository.TrainingHistoryLog to what the status
// endpoint reports.
type HistoryReader interface {
	Latest(ctx context.Context) (repository.TrainingHistoryEntry, bool, error)
}

// ClusterMembers narrows *repository.MongoProvider (and *repository.MemoryProvider)
// to what the clusters endpoint needs to report per-cluster membership counts.
type ClusterMembers interface {
	ListUsersByClusterLabel(ctx context.Context, label int) ([]repository.UserRecord, error)
}

// AdminHandler exposes the on-demand training/broadcast triggers and
// read-only model inspection the spec's admin surface calls for (§6): the
// cron jobs already run this same work on a schedule, this handler just
// lets an operator run either one immediately and see what is currently
// published.
type AdminHandler struct {
	retrainer   Retrainer
	broadcaster Broadcaster
	store       ModelStore
	versions    VersionLister
	history     HistoryReader
	members     ClusterMembers
}

func NewAdminHandler(retrainer Retrainer, broadcaster Broadcaster, store ModelStore, versions VersionLister, history HistoryReader, members ClusterMembers) *AdminHandler {
	return &AdminHandler{
		retrainer:   retrainer,
		broadcaster: broadcaster,
		store:       store,
		versions:    versions,
		history:     history,
		members:     members,
	}
}

type trainResponseDTO struct {
	Version    string  `json:"version"`
	K          int     `json:"k"`
	Silhouette float64 `json:"silhouette"`
}

// Train runs one training pass synchronously and reports the fitted model.
func (h *AdminHandler) Train(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	logger.Info().Msg("admin-triggered training run requested")

	model, err := h.retrainer.TriggerRetrain(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("admin-triggered training run failed")
		writeAppError(w, err)
		return
	}
	logger.Info().Str("version", model.Version).Int("k", model.K).Msg("admin-triggered training run completed")
	respondJSON(w, http.StatusOK, trainResponseDTO{
		Version:    model.Version,
		K:          model.K,
		Silhouette: model.Silhouette,
	})
}

type broadcastResponseDTO struct {
	NotifiedCount int `json:"notifiedCount"`
}

// Broadcast runs one recommendation broadcast synchronously and reports how
// many users were notified.
func (h *AdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	notified, err := h.broadcaster.TriggerBroadcast(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("admin-triggered broadcast failed")
		writeAppError(w, err)
		return
	}
	logger.Info().Int("notifiedCount", notified).Msg("admin-triggered broadcast completed")
	respondJSON(w, http.StatusOK, broadcastResponseDTO{NotifiedCount: notified})
}

type statusResponseDTO struct {
	ActiveVersion    string  `json:"activeVersion,omitempty"`
	ActiveK          int     `json:"activeK,omitempty"`
	ActiveSilhouette float64 `json:"activeSilhouette,omitempty"`
	ModelPublished   bool    `json:"modelPublished"`

	LastTrainingVersion   string  `json:"lastTrainingVersion,omitempty"`
	LastTrainingSucceeded bool    `json:"lastTrainingSucceeded"`
	LastTrainingUserCount int     `json:"lastTrainingUserCount,omitempty"`
	LastTrainingFailure   string  `json:"lastTrainingFailure,omitempty"`
	HasTrainingHistory    bool    `json:"hasTrainingHistory"`

	TrainedVersionCount int `json:"trainedVersionCount"`
}

// Status reports the currently published model and the most recent
// training-history entry, so an operator can see at a glance whether the
// last scheduled or on-demand run actually succeeded.
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	var resp statusResponseDTO

	if model := h.store.Load(); model != nil {
		resp.ModelPublished = true
		resp.ActiveVersion = model.Version
		resp.ActiveK = model.K
		resp.ActiveSilhouette = model.Silhouette
	}

	if h.history != nil {
		if entry, ok, err := h.history.Latest(r.Context()); err == nil && ok {
			resp.HasTrainingHistory = true
			resp.LastTrainingVersion = entry.Version
			resp.LastTrainingSucceeded = entry.Succeeded
			resp.LastTrainingUserCount = entry.UserCount
			resp.LastTrainingFailure = entry.FailureKind
		}
	}

	if h.versions != nil {
		if records, err := h.versions.List(r.Context()); err == nil {
			resp.TrainedVersionCount = len(records)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type clusterSummaryDTO struct {
	Label            int       `json:"label"`
	MemberCount      int       `json:"memberCount"`
	NumericCentroid  []float64 `json:"numericCentroid"`
	CategoricalModes []int     `json:"categoricalModes"`
}

type clustersResponseDTO struct {
	Version  string              `json:"version"`
	K        int                 `json:"k"`
	Clusters []clusterSummaryDTO `json:"clusters"`
}

// Clusters lists every cluster in the active model with its centroid and
// current membership count, for the operator-facing cluster inspection
// view (§6).
func (h *AdminHandler) Clusters(w http.ResponseWriter, r *http.Request) {
	model := h.store.Load()
	if model == nil {
		respondError(w, http.StatusNotFound, "no trained model published yet")
		return
	}

	clusters := make([]clusterSummaryDTO, model.K)
	for label := 0; label < model.K; label++ {
		summary := clusterSummaryDTO{Label: label}
		if label < len(model.NumericCentroids) {
			summary.NumericCentroid = model.NumericCentroids[label]
		}
		if label < len(model.CategoricalModes) {
			summary.CategoricalModes = model.CategoricalModes[label]
		}
		if h.members != nil {
			if members, err := h.members.ListUsersByClusterLabel(r.Context(), label); err == nil {
				summary.MemberCount = len(members)
			}
		}
		clusters[label] = summary
	}

	respondJSON(w, http.StatusOK, clustersResponseDTO{
		Version:  model.Version,
		K:        model.K,
		Clusters: clusters,
	})
}

func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.As(err); ok {
		respondError(w, appErr.HTTPStatus(), appErr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
