package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"plantgen-backend/cmd/optimizer-service/websocket"
	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/garden"
	"plantgen-backend/internal/genetic"
	"plantgen-backend/internal/logging"
	"plantgen-backend/internal/metrics"
	"plantgen-backend/internal/optimizer"
)

// OptimizerService is the subset of optimizer.Service the handler depends
// on, narrowed for testability.
type OptimizerService interface {
	Optimize(ctx context.Context, req optimizer.Request) (*optimizer.Response, error)
	OptimizeDetailed(ctx context.Context, req optimizer.Request) (*optimizer.Response, *genetic.Result, error)
}

type OptimizerHandler struct {
	service OptimizerService
	hub     *websocket.Hub
}

func NewOptimizerHandler(service OptimizerService, hub *websocket.Hub) *OptimizerHandler {
	return &OptimizerHandler{service: service, hub: hub}
}

type optimizeRequestDTO struct {
	Objective       string  `json:"objective"`
	Area            float64 `json:"area"`
	MaxWater        float64 `json:"maxWater"`
	Budget          float64 `json:"budget"`
	MaintenanceTime float64 `json:"maintenanceTime"`
	PopulationSize  int     `json:"populationSize"`
	MaxGenerations  int     `json:"maxGenerations"`
	Seed            *int64  `json:"seed,omitempty"`
}

func (dto optimizeRequestDTO) toRequest() optimizer.Request {
	req := optimizer.Request{
		Objective:       garden.Objective(dto.Objective),
		Area:            dto.Area,
		MaxWater:        dto.MaxWater,
		Budget:          dto.Budget,
		MaintenanceTime: dto.MaintenanceTime,
		PopulationSize:  dto.PopulationSize,
		MaxGenerations:  dto.MaxGenerations,
	}
	if dto.Seed != nil {
		req.Seed = *dto.Seed
		req.HasSeed = true
	}
	return req
}

// Optimize runs one synchronous layout search and returns the ranked
// solutions.
func (h *OptimizerHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var dto optimizeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Optimize(r.Context(), dto.toRequest())
	if err != nil {
		writeAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Stream upgrades the connection to a websocket and replays the run's
// generation-by-generation convergence trail before sending the final
// solutions, for a live progress view of one optimization.
func (h *OptimizerHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var dto optimizeRequestDTO
	if err := json.Unmarshal([]byte(r.URL.Query().Get("request")), &dto); err != nil {
		respondError(w, http.StatusBadRequest, "missing or invalid 'request' query parameter")
		return
	}

	client, err := h.hub.Upgrade(w, r)
	if err != nil {
		return
	}
	defer client.Close()

	resp, result, err := h.service.OptimizeDetailed(r.Context(), dto.toRequest())
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("optimizer: streamed run failed")
		client.SendProgress(websocket.ProgressMessage{Type: "error", Message: err.Error()})
		return
	}

	for _, stat := range result.Stats {
		sent := time.Now()
		client.SendProgress(websocket.ProgressMessage{
			Type:            "generation",
			Generation:      stat.Generation,
			BestFitness:     stat.BestFitness,
			AvgFitness:      stat.AvgFitness,
			FitnessVariance: stat.FitnessVariance,
		})
		metrics.RecordProgressBroadcast(time.Since(sent))
	}

	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		client.SendProgress(websocket.ProgressMessage{Type: "error", Message: "failed to encode result"})
		return
	}
	client.SendProgress(websocket.ProgressMessage{Type: "done", Message: string(payload)})
}

func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.As(err); ok {
		respondError(w, appErr.HTTPStatus(), appErr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
