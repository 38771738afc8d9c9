package garden

import (
	"math"

	"plantgen-backend/internal/catalog"
)

const compatibilitySigma = 1.5
const utilizationOptimum = 0.85

type neighborOffset struct {
	dr, dc   int
	distance float64
}

var neighborOffsets = []neighborOffset{
	{dr: 0, dc: 1, distance: 1},
	{dr: 1, dc: 0, distance: 1},
	{dr: 1, dc: 1, distance: math.Sqrt2},
}

// Evaluator computes the four §4.2 metrics and their weighted aggregate for a
// Layout. It is read-only and safe to share across concurrent evaluations
// since the catalog is immutable after load.
type Evaluator struct {
	plants map[int]catalog.Plant
	compat *catalog.CompatibilityTable
}

// NewEvaluator indexes the catalog by plant id for O(1) lookups during
// evaluation.
func NewEvaluator(plants []catalog.Plant, compat *catalog.CompatibilityTable) *Evaluator {
	idx := make(map[int]catalog.Plant, len(plants))
	for _, p := range plants {
		idx[p.ID] = p
	}
	return &Evaluator{plants: idx, compat: compat}
}

// Evaluate computes and stores CEE, PSNTPA, WCE, UE and the weighted Fitness
// on l, then returns the aggregate fitness for convenience.
func (e *Evaluator) Evaluate(l *Layout, objective Objective, c Constraints) float64 {
	l.CEE = e.cee(l)
	l.PSNTPA = e.psntpa(l, objective)
	l.WCE = e.wce(l, c)
	l.UE = e.ue(l, c)

	w := WeightsFor(objective)
	l.Fitness = w.CEE*l.CEE + w.PSNTPA*l.PSNTPA + w.WCE*l.WCE + w.UE*l.UE
	return l.Fitness
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (e *Evaluator) cee(l *Layout) float64 {
	var num, den float64
	rows, cols := l.Rows(), l.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id1 := l.Grid[r][c]
			if id1 == EmptyCell {
				continue
			}
			p1, ok := e.plants[id1]
			if !ok {
				continue
			}
			for _, off := range neighborOffsets {
				nr, nc := r+off.dr, c+off.dc
				if nr >= rows || nc >= cols {
					continue
				}
				id2 := l.Grid[nr][nc]
				if id2 == EmptyCell {
					continue
				}
				p2, ok := e.plants[id2]
				if !ok {
					continue
				}
				w := math.Exp(-off.distance / compatibilitySigma)
				num += w * e.compat.Get(p1.Species, p2.Species)
				den += w
			}
		}
	}
	if den == 0 {
		return 0
	}
	return clamp01(num / den)
}

func (e *Evaluator) psntpa(l *Layout, objective Objective) float64 {
	distinct := l.DistinctIDs()
	if len(distinct) == 0 {
		return 0
	}

	var prod float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				prod += p.Production()
			}
		}
	}

	target := TargetTypeFor(objective)
	targetCount := 0
	for _, id := range distinct {
		if p, ok := e.plants[id]; ok && p.HasType(target) {
			targetCount++
		}
	}

	prodTerm := prod / 10
	if prodTerm > 1 {
		prodTerm = 1
	}
	targetTerm := float64(targetCount) / float64(len(distinct))
	if targetTerm > 1 {
		targetTerm = 1
	}
	return 0.5*prodTerm + 0.5*targetTerm
}

func (e *Evaluator) wce(l *Layout, c Constraints) float64 {
	var w float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				w += p.WeeklyWaterLiters
			}
		}
	}
	if c.MaxWaterWeekly <= 0 || w > c.MaxWaterWeekly {
		return 0
	}
	return clamp01(1 - w/c.MaxWaterWeekly)
}

func (e *Evaluator) ue(l *Layout, c Constraints) float64 {
	area := l.Area()
	if area <= 0 {
		return 0
	}
	var occupied float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				occupied += p.Size
			}
		}
	}
	u := occupied / area

	var ue float64
	if u > utilizationOptimum {
		ue = 1 - 2*(u-utilizationOptimum)
		if ue < 0 {
			ue = 0
		}
	} else {
		ue = u / utilizationOptimum
		if ue > 1 {
			ue = 1
		}
	}

	// SPEC_FULL.md §3.2: maintenance-overage penalty. maintenance(p) is a per
	// distinct placed species estimate so adding more of an already-placed
	// species doesn't inflate the minutes estimate.
	if c.MaintenanceWeekly > 0 {
		var minutes float64
		for _, id := range l.DistinctIDs() {
			if p, ok := e.plants[id]; ok {
				minutes += p.WeeklyWaterLiters/10 + 2
			}
		}
		if minutes > c.MaintenanceWeekly {
			scale := 1 - 0.5*(minutes/c.MaintenanceWeekly-1)
			if scale < 0 {
				scale = 0
			}
			ue *= scale
		}
	}
	return ue
}

// WeeklyWater sums the water demand of every placed plant, matching the
// WCE numerator so callers (e.g. response totals) don't recompute it.
func (e *Evaluator) WeeklyWater(l *Layout) float64 {
	var w float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				w += p.WeeklyWaterLiters
			}
		}
	}
	return w
}

// Cost sums the placement cost (size*50 per placed plant instance) used by
// the initializer's running budget and echoed in the response totals.
func (e *Evaluator) Cost(l *Layout) float64 {
	var cost float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				cost += p.Size * 50
			}
		}
	}
	return cost
}

// MonthlyProduction estimates the layout's monthly yield by scaling the
// PSNTPA production term to a 30-day window relative to a 10-day reference
// cycle baked into Plant.Production.
func (e *Evaluator) MonthlyProduction(l *Layout) float64 {
	var prod float64
	for _, row := range l.Grid {
		for _, id := range row {
			if id == EmptyCell {
				continue
			}
			if p, ok := e.plants[id]; ok {
				prod += p.Production()
			}
		}
	}
	return prod * 3
}

// Plant looks up a plant by id for callers outside the package (e.g. response
// mapping, calendar construction) that need catalog detail alongside a layout.
func (e *Evaluator) Plant(id int) (catalog.Plant, bool) {
	p, ok := e.plants[id]
	return p, ok
}
