package training

import "plantgen-backend/internal/garden"

// objectiveOrder fixes a stable integer code per objective so the same
// encoding is used across every training run and every Predict call
// against a persisted model.
var objectiveOrder = []garden.Objective{
	garden.ObjectiveAlimenticio,
	garden.ObjectiveMedicinal,
	garden.ObjectiveSostenible,
	garden.ObjectiveOrnamental,
}

func objectiveCode(o string) int {
	for i, candidate := range objectiveOrder {
		if string(candidate) == o {
			return i
		}
	}
	return 0
}
