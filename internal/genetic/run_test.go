package genetic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantgen-backend/internal/catalog"
	"plantgen-backend/internal/garden"
)

func smallCatalog() []catalog.Plant {
	return []catalog.Plant{
		{ID: 1, Species: "tomato", Types: []catalog.PlantType{catalog.TypeVegetable}, WeeklyWaterLiters: 8, HarvestDays: 70, Size: 0.3},
		{ID: 2, Species: "basil", Types: []catalog.PlantType{catalog.TypeAromatic}, WeeklyWaterLiters: 3, HarvestDays: 40, Size: 0.1},
		{ID: 3, Species: "lettuce", Types: []catalog.PlantType{catalog.TypeVegetable}, WeeklyWaterLiters: 5, HarvestDays: 30, Size: 0.2},
	}
}

func newSmallRunner(seed int64, cfg Config) *Runner {
	plants := smallCatalog()
	compat := catalog.NewCompatibilityTable([]catalog.CompatibilityPair{
		{A: "tomato", B: "basil", Compatibility: 0.8},
		{A: "tomato", B: "lettuce", Compatibility: 0.3},
	})
	ev := garden.NewEvaluator(plants, compat)
	return NewRunner(seed, plants, ev, garden.ObjectiveAlimenticio, garden.DefaultConstraints(), cfg)
}

func smokeConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 12
	cfg.MaxGenerations = 10
	return cfg
}

func TestRunIsDeterministicUnderSeed(t *testing.T) {
	r1 := newSmallRunner(42, smokeConfig())
	r2 := newSmallRunner(42, smokeConfig())

	res1 := r1.Run(context.Background())
	res2 := r2.Run(context.Background())

	require.Len(t, res1.Top3, len(res2.Top3))
	for i := range res1.Top3 {
		assert.Equal(t, res1.Top3[i].Grid, res2.Top3[i].Grid)
		assert.Equal(t, res1.Top3[i].Fitness, res2.Top3[i].Fitness)
	}
	assert.Equal(t, res1.ConvergenceReason, res2.ConvergenceReason)
	assert.Equal(t, res1.GenerationsExecuted, res2.GenerationsExecuted)
}

func TestElitismIsMonotonicNonDecreasing(t *testing.T) {
	r := newSmallRunner(7, smokeConfig())
	res := r.Run(context.Background())

	require.NotEmpty(t, res.Stats)
	prev := res.Stats[0].BestFitness
	for _, s := range res.Stats[1:] {
		assert.GreaterOrEqual(t, s.BestFitness, prev)
		prev = s.BestFitness
	}
}

func TestTopThreeDescending(t *testing.T) {
	r := newSmallRunner(1, smokeConfig())
	res := r.Run(context.Background())

	for i := 1; i < len(res.Top3); i++ {
		assert.GreaterOrEqual(t, res.Top3[i-1].Fitness, res.Top3[i].Fitness)
	}
}

func TestEmptyPopulationWhenBudgetsImpossible(t *testing.T) {
	plants := []catalog.Plant{
		{ID: 1, Species: "giant", WeeklyWaterLiters: 1000, Size: 100},
	}
	ev := garden.NewEvaluator(plants, catalog.NewCompatibilityTable(nil))
	c := garden.Constraints{MaxArea: 1.0, MaxWaterWeekly: 80, MaxBudget: 200, MaintenanceWeekly: 30}
	cfg := smokeConfig()
	r := NewRunner(1, plants, ev, garden.ObjectiveAlimenticio, c, cfg)

	res := r.Run(context.Background())
	assert.Equal(t, ReasonEmptyPopulation, res.ConvergenceReason)
	assert.Empty(t, res.Top3)
}

func TestRunRespectsCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 12
	cfg.MaxGenerations = 150
	r := newSmallRunner(5, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Run(ctx)
	assert.Equal(t, ReasonCancelled, res.ConvergenceReason)
	assert.Equal(t, 0, res.GenerationsExecuted)
}
