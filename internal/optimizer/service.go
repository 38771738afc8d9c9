package optimizer

import (
	"context"
	"time"

	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/catalog"
	"plantgen-backend/internal/garden"
	"plantgen-backend/internal/genetic"
	"plantgen-backend/internal/logging"
	"plantgen-backend/internal/metrics"
)

const minPlantsForOptimization = 10

// Service is the Layout Optimizer's entry point: it validates a request,
// loads the catalog, runs the genetic loop, and maps the result onto the
// response contract.
type Service struct {
	catalog catalog.Provider
}

// NewService wires a catalog provider.
func NewService(provider catalog.Provider) *Service {
	return &Service{catalog: provider}
}

// Optimize runs one full layout search and returns only the response
// contract. Use OptimizeDetailed when a caller (the progress-stream
// websocket handler) also needs the per-generation stats.
func (s *Service) Optimize(ctx context.Context, req Request) (*Response, error) {
	resp, _, err := s.OptimizeDetailed(ctx, req)
	return resp, err
}

// OptimizeDetailed runs one full layout search. ctx cancellation is honored
// between generations (§5); a request without HasSeed gets a time-derived
// seed so unseeded callers still get a usable, if non-reproducible, run
// (an explicit seed of 0 with HasSeed set is used as given). The returned genetic.Result carries the
// generation-by-generation stats trail a progress stream replays.
func (s *Service) OptimizeDetailed(ctx context.Context, req Request) (*Response, *genetic.Result, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	plants, err := s.catalog.ListPlants(ctx)
	if err != nil {
		return nil, nil, apperrors.CatalogUnavailable(err)
	}
	if len(plants) < minPlantsForOptimization {
		return nil, nil, apperrors.InsufficientData("fewer than 10 plants available for optimization")
	}
	pairs, err := s.catalog.ListCompatibilityPairs(ctx)
	if err != nil {
		return nil, nil, apperrors.CatalogUnavailable(err)
	}

	evaluator := garden.NewEvaluator(plants, catalog.NewCompatibilityTable(pairs))

	seed := req.Seed
	if !req.HasSeed {
		seed = time.Now().UnixNano()
	}

	cfg := genetic.DefaultConfig()
	cfg.PopulationSize = req.PopulationSize
	cfg.MaxGenerations = req.MaxGenerations

	runner := genetic.NewRunner(seed, plants, evaluator, req.Objective, req.Constraints(), cfg)

	start := time.Now()
	result := runner.Run(ctx)
	elapsed := time.Since(start)

	var bestFitness float64
	if len(result.Top3) > 0 {
		bestFitness = result.Top3[0].Fitness
	}
	metrics.RecordOptimization(string(req.Objective), elapsed, result.GenerationsExecuted, bestFitness)

	logging.FromContext(ctx).Info().
		Str("objective", string(req.Objective)).
		Int("generationsExecuted", result.GenerationsExecuted).
		Str("convergenceReason", string(result.ConvergenceReason)).
		Dur("elapsed", elapsed).
		Msg("layout optimization run completed")

	resp := &Response{
		Solutions:            buildSolutions(result.Top3, evaluator),
		GenerationsExecuted:  result.GenerationsExecuted,
		ConvergenceReason:    string(result.ConvergenceReason),
		ExecutionTimeSeconds: elapsed.Seconds(),
		EchoedRequest:        req,
	}
	return resp, result, nil
}
