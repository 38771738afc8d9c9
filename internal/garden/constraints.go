package garden

// Constraints are the hard bounds a layout is optimized against (§3).
type Constraints struct {
	MaxArea           float64 // m^2, [1.0, 5.0]
	MaxWaterWeekly    float64 // L, [80, 200]
	MaxBudget         float64 // monetary units, [200, 800]
	MaintenanceWeekly float64 // minutes, >= 30
}

// DefaultConstraints mirrors the §6 request defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxArea:           2.0,
		MaxWaterWeekly:    150,
		MaxBudget:         400,
		MaintenanceWeekly: 90,
	}
}
