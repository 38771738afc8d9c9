// Package garden holds the GardenLayout chromosome, the objective/constraints
// value objects, and the fitness evaluator (§4.1-§4.2).
package garden

import "plantgen-backend/internal/catalog"

// Objective is one of the four garden purposes driving the fitness weight vector.
type Objective string

const (
	ObjectiveAlimenticio Objective = "alimenticio"
	ObjectiveMedicinal   Objective = "medicinal"
	ObjectiveSostenible  Objective = "sostenible"
	ObjectiveOrnamental  Objective = "ornamental"
)

// Valid reports whether o is one of the four known objectives.
func (o Objective) Valid() bool {
	switch o {
	case ObjectiveAlimenticio, ObjectiveMedicinal, ObjectiveSostenible, ObjectiveOrnamental:
		return true
	}
	return false
}

// Weights is the (w_cee, w_psntpa, w_wce, w_ue) aggregation vector for one objective.
type Weights struct {
	CEE, PSNTPA, WCE, UE float64
}

var objectiveWeights = map[Objective]Weights{
	ObjectiveAlimenticio: {CEE: 0.20, PSNTPA: 0.50, WCE: 0.20, UE: 0.10},
	ObjectiveMedicinal:   {CEE: 0.25, PSNTPA: 0.45, WCE: 0.15, UE: 0.15},
	ObjectiveSostenible:  {CEE: 0.25, PSNTPA: 0.20, WCE: 0.40, UE: 0.15},
	ObjectiveOrnamental:  {CEE: 0.20, PSNTPA: 0.40, WCE: 0.15, UE: 0.25},
}

// WeightsFor returns the fixed weight vector for o. Callers must validate o
// first; unknown objectives return the zero vector.
func WeightsFor(o Objective) Weights {
	return objectiveWeights[o]
}

// targetTypes maps each objective to the plant type PSNTPA counts as "on
// target". sostenible -> medicinal is SPEC_FULL.md §3.1's documented choice,
// not an inferred default.
var targetTypes = map[Objective]catalog.PlantType{
	ObjectiveAlimenticio: catalog.TypeVegetable,
	ObjectiveMedicinal:   catalog.TypeMedicinal,
	ObjectiveSostenible:  catalog.TypeMedicinal,
	ObjectiveOrnamental:  catalog.TypeOrnamental,
}

// TargetTypeFor returns the PSNTPA target plant type for o.
func TargetTypeFor(o Objective) catalog.PlantType {
	return targetTypes[o]
}
