// Package optimizer wires the catalog, fitness evaluator and genetic loop
// into the Layout Optimizer's request/response contract (§6).
package optimizer

import (
	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/garden"
	"plantgen-backend/internal/validation"
)

// Request is the Layout Optimizer's input surface, with the §6 bounds.
type Request struct {
	Objective       garden.Objective
	Area            float64
	MaxWater        float64
	Budget          float64
	MaintenanceTime float64
	PopulationSize  int
	MaxGenerations  int
	Seed            int64
	HasSeed         bool
}

// DefaultRequest returns the §6 defaults.
func DefaultRequest() Request {
	return Request{
		Objective:       garden.ObjectiveAlimenticio,
		Area:            2.0,
		MaxWater:        150,
		Budget:          400,
		MaintenanceTime: 90,
		PopulationSize:  40,
		MaxGenerations:  150,
	}
}

// ApplyDefaults fills zero-valued fields with the §6 defaults, matching the
// reference implementation's "missing field -> documented default" rule.
func (r *Request) ApplyDefaults() {
	d := DefaultRequest()
	if r.Objective == "" {
		r.Objective = d.Objective
	}
	if r.Area == 0 {
		r.Area = d.Area
	}
	if r.MaxWater == 0 {
		r.MaxWater = d.MaxWater
	}
	if r.Budget == 0 {
		r.Budget = d.Budget
	}
	if r.MaintenanceTime == 0 {
		r.MaintenanceTime = d.MaintenanceTime
	}
	if r.PopulationSize == 0 {
		r.PopulationSize = d.PopulationSize
	}
	if r.MaxGenerations == 0 {
		r.MaxGenerations = d.MaxGenerations
	}
}

// Validate checks the §6 bounds, returning an InvalidInput AppError naming
// the first offending field.
func (r Request) Validate() error {
	v := validation.New()
	if !r.Objective.Valid() {
		return apperrors.InvalidInput("objective", "must be one of alimenticio, medicinal, sostenible, ornamental")
	}
	if err := v.FloatRange(r.Area, 1.0, 5.0); err != nil {
		return apperrors.InvalidInput("area", err.Error())
	}
	if err := v.FloatRange(r.MaxWater, 80, 200); err != nil {
		return apperrors.InvalidInput("maxWater", err.Error())
	}
	if err := v.FloatRange(r.Budget, 200, 800); err != nil {
		return apperrors.InvalidInput("budget", err.Error())
	}
	if err := v.FloatRange(r.MaintenanceTime, 30, 300); err != nil {
		return apperrors.InvalidInput("maintenanceTime", err.Error())
	}
	if err := v.IntRange(r.PopulationSize, 10, 100); err != nil {
		return apperrors.InvalidInput("populationSize", err.Error())
	}
	if err := v.IntRange(r.MaxGenerations, 50, 500); err != nil {
		return apperrors.InvalidInput("maxGenerations", err.Error())
	}
	return nil
}

// Constraints maps the request's bounded fields onto the domain value object.
func (r Request) Constraints() garden.Constraints {
	return garden.Constraints{
		MaxArea:           r.Area,
		MaxWaterWeekly:    r.MaxWater,
		MaxBudget:         r.Budget,
		MaintenanceWeekly: r.MaintenanceTime,
	}
}
