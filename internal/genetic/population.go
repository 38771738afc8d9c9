package genetic

import (
	"math"
	"math/rand"

	"plantgen-backend/internal/catalog"
	"plantgen-backend/internal/garden"
)

// initializeOne builds a single random individual per §4.3's initialization
// rule. It returns nil if the sampled grid collapses to zero rows or columns
// (a degenerate cell size relative to the sampled aspect ratio) — the caller
// treats nil as "no viable individual from this draw".
func initializeOne(rng *rand.Rand, plants []catalog.Plant, c garden.Constraints) *garden.Layout {
	area := c.MaxArea
	ratio := 0.5 + rng.Float64()*(2.0-0.5)
	width := math.Sqrt(area * ratio)
	height := area / width

	cellSize := 0.5 + rng.Float64()*(1.0-0.5)
	rows := int(height / cellSize)
	cols := int(width / cellSize)
	if rows < 1 || cols < 1 {
		return nil
	}

	layout := garden.NewLayout(width, height, rows, cols)
	order := rng.Perm(rows * cols)

	var waterUsed, costUsed, areaUsed float64
	for _, idx := range order {
		r, col := idx/cols, idx%cols
		p := plants[rng.Intn(len(plants))]

		nextWater := waterUsed + p.WeeklyWaterLiters
		nextCost := costUsed + p.Size*50
		nextArea := areaUsed + p.Size
		if nextWater > c.MaxWaterWeekly || nextCost > c.MaxBudget || nextArea > c.MaxArea {
			continue
		}

		layout.Grid[r][col] = p.ID
		waterUsed, costUsed, areaUsed = nextWater, nextCost, nextArea
	}
	return layout
}

// initializePopulation draws n individuals, discarding degenerate draws. It
// may return fewer than n layouts if repeated draws collapse to zero grid
// dimensions; an entirely empty result signals S2's empty-population case to
// the caller.
func initializePopulation(rng *rand.Rand, n int, plants []catalog.Plant, c garden.Constraints) []*garden.Layout {
	pop := make([]*garden.Layout, 0, n)
	for i := 0; i < n; i++ {
		if l := initializeOne(rng, plants, c); l != nil {
			pop = append(pop, l)
		}
	}
	return pop
}

// tournamentSelect draws k individuals uniformly with replacement and
// returns the fittest.
func tournamentSelect(rng *rand.Rand, pop []*garden.Layout, k int) *garden.Layout {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		cand := pop[rng.Intn(len(pop))]
		if cand.Fitness > best.Fitness {
			best = cand
		}
	}
	return best
}

// selectParents runs n independent tournaments.
func selectParents(rng *rand.Rand, pop []*garden.Layout, n, k int) []*garden.Layout {
	parents := make([]*garden.Layout, n)
	for i := range parents {
		parents[i] = tournamentSelect(rng, pop, k)
	}
	return parents
}

// twoPointRowCrossover implements §4.3's row-wise two-point crossover.
// Shape mismatch or too few rows falls back to cloning both parents.
func twoPointRowCrossover(rng *rand.Rand, p1, p2 *garden.Layout, prob float64) (*garden.Layout, *garden.Layout) {
	if rng.Float64() >= prob || p1.Rows() != p2.Rows() || p1.Cols() != p2.Cols() || p1.Rows() < 3 {
		return p1.Clone(), p2.Clone()
	}

	rows := p1.Rows()
	cut1 := 1 + rng.Intn(rows-2)   // U{1..rows-2}
	cut2 := cut1 + 1 + rng.Intn(rows-1-cut1) // U{cut1+1..rows-1}

	child1 := p1.Clone()
	child2 := p2.Clone()
	for r := cut1; r < cut2; r++ {
		copy(child1.Grid[r], p2.Grid[r])
		copy(child2.Grid[r], p1.Grid[r])
	}
	return child1, child2
}

// swapMutate swaps the contents of two uniformly drawn cells (possibly the
// same cell, a no-op) with probability prob.
func swapMutate(rng *rand.Rand, l *garden.Layout, prob float64) {
	if rng.Float64() >= prob {
		return
	}
	rows, cols := l.Rows(), l.Cols()
	if rows == 0 || cols == 0 {
		return
	}
	r1, c1 := rng.Intn(rows), rng.Intn(cols)
	r2, c2 := rng.Intn(rows), rng.Intn(cols)
	l.Grid[r1][c1], l.Grid[r2][c2] = l.Grid[r2][c2], l.Grid[r1][c1]
}
