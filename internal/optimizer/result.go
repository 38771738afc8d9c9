package optimizer

import (
	"plantgen-backend/internal/garden"
)

// CalendarEntry is one species' planting/harvest schedule within a solution.
type CalendarEntry struct {
	Species      string
	PlantingWeek int
	HarvestWeek  int
}

// Solution is one ranked layout in the §6 response shape.
type Solution struct {
	Rank     int
	Grid     [][]int
	WidthM   float64
	HeightM  float64
	CEE      float64
	PSNTPA   float64
	WCE      float64
	UE       float64
	Fitness  float64

	TotalPlants      int
	WeeklyWaterL     float64
	Cost             float64
	UsedAreaM2       float64
	MonthlyProduction float64

	Calendar []CalendarEntry
}

// Response is the full Layout Optimizer output (§6).
type Response struct {
	Solutions            []Solution
	GenerationsExecuted  int
	ConvergenceReason    string
	ExecutionTimeSeconds float64
	EchoedRequest        Request
}

// buildSolutions maps genetic.Result's top layouts onto the response DTO,
// computing totals and the per-species planting calendar from the catalog.
func buildSolutions(layouts []*garden.Layout, ev *garden.Evaluator) []Solution {
	out := make([]Solution, 0, len(layouts))
	for i, l := range layouts {
		var usedArea float64
		calendar := make([]CalendarEntry, 0, len(l.DistinctIDs()))
		for _, id := range l.DistinctIDs() {
			p, ok := ev.Plant(id)
			if !ok {
				continue
			}
			usedArea += p.Size * float64(l.CountOf(id))
			calendar = append(calendar, CalendarEntry{
				Species:      p.Species,
				PlantingWeek: 0,
				HarvestWeek:  p.HarvestDays / 7,
			})
		}

		out = append(out, Solution{
			Rank:              i + 1,
			Grid:              l.Grid,
			WidthM:            l.WidthM,
			HeightM:           l.HeightM,
			CEE:               l.CEE,
			PSNTPA:            l.PSNTPA,
			WCE:               l.WCE,
			UE:                l.UE,
			Fitness:           l.Fitness,
			TotalPlants:       l.TotalPlants(),
			WeeklyWaterL:      ev.WeeklyWater(l),
			Cost:              ev.Cost(l),
			UsedAreaM2:        usedArea,
			MonthlyProduction: ev.MonthlyProduction(l),
			Calendar:          calendar,
		})
	}
	return out
}

