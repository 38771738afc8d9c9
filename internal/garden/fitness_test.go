package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantgen-backend/internal/catalog"
)

func testCatalog() []catalog.Plant {
	return []catalog.Plant{
		{ID: 1, Species: "tomato", Types: []catalog.PlantType{catalog.TypeVegetable}, WeeklyWaterLiters: 10, HarvestDays: 70, Size: 0.5},
		{ID: 2, Species: "basil", Types: []catalog.PlantType{catalog.TypeAromatic}, WeeklyWaterLiters: 4, HarvestDays: 40, Size: 0.2},
	}
}

func newTestEvaluator() *Evaluator {
	plants := testCatalog()
	compat := catalog.NewCompatibilityTable([]catalog.CompatibilityPair{
		{A: "tomato", B: "basil", Compatibility: 0.9},
	})
	return NewEvaluator(plants, compat)
}

func TestMetricsInBounds(t *testing.T) {
	ev := newTestEvaluator()
	l := NewLayout(1.0, 1.0, 2, 2)
	l.Grid[0][0] = 1
	l.Grid[0][1] = 2
	l.Grid[1][0] = 2
	l.Grid[1][1] = 1

	c := DefaultConstraints()
	ev.Evaluate(l, ObjectiveAlimenticio, c)

	for _, v := range []float64{l.CEE, l.PSNTPA, l.WCE, l.UE, l.Fitness} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestWCEZeroWhenOverBudget(t *testing.T) {
	ev := newTestEvaluator()
	l := NewLayout(5, 5, 3, 3)
	for r := range l.Grid {
		for c := range l.Grid[r] {
			l.Grid[r][c] = 1 // 9 tomatoes * 10L = 90L
		}
	}
	c := DefaultConstraints()
	c.MaxWaterWeekly = 50
	ev.Evaluate(l, ObjectiveAlimenticio, c)
	assert.Equal(t, 0.0, l.WCE)
}

func TestUEPeaksAtOptimum(t *testing.T) {
	ev := newTestEvaluator()
	c := Constraints{MaxArea: 1, MaxWaterWeekly: 200, MaxBudget: 800, MaintenanceWeekly: 1000}

	// area 1 m^2, one tomato occupies 0.5 -> U = 0.5/1 = 0.5 < 0.85
	below := NewLayout(1, 1, 1, 1)
	below.Grid[0][0] = 1
	ev.Evaluate(below, ObjectiveAlimenticio, c)
	assert.InDelta(t, 0.5/0.85, below.UE, 1e-9)

	// pack plants until utilization exceeds 0.85, confirm UE decreases and floors at 0
	over := NewLayout(1, 1, 2, 2)
	over.Grid[0][0] = 1
	over.Grid[0][1] = 1
	over.Grid[1][0] = 1
	over.Grid[1][1] = 1 // 4*0.5 = 2.0 occupied / 1 area = U=2.0
	ev.Evaluate(over, ObjectiveAlimenticio, c)
	assert.GreaterOrEqual(t, over.UE, 0.0)
	assert.Less(t, over.UE, below.UE)
}

func TestCEESymmetricUnderPreservingSwap(t *testing.T) {
	ev := newTestEvaluator()
	c := DefaultConstraints()

	a := NewLayout(1, 1, 2, 2)
	a.Grid[0][0] = 1
	a.Grid[0][1] = 2
	ev.Evaluate(a, ObjectiveAlimenticio, c)

	b := NewLayout(1, 1, 2, 2)
	b.Grid[0][0] = 2
	b.Grid[0][1] = 1
	ev.Evaluate(b, ObjectiveAlimenticio, c)

	assert.InDelta(t, a.CEE, b.CEE, 1e-9)
}

func TestCEEZeroWhenNoNeighbors(t *testing.T) {
	ev := newTestEvaluator()
	l := NewLayout(5, 5, 1, 1)
	l.Grid[0][0] = 1
	ev.Evaluate(l, ObjectiveAlimenticio, DefaultConstraints())
	assert.Equal(t, 0.0, l.CEE)
}

func TestPSNTPAZeroWhenEmpty(t *testing.T) {
	ev := newTestEvaluator()
	l := NewLayout(1, 1, 2, 2)
	assert.Equal(t, 0.0, ev.psntpa(l, ObjectiveAlimenticio))
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewLayout(1, 1, 2, 2)
	l.Grid[0][0] = 1
	clone := l.Clone()
	clone.Grid[0][0] = 2
	require.Equal(t, 1, l.Grid[0][0])
	require.Equal(t, 2, clone.Grid[0][0])
}
