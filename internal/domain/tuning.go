package domain

// Heuristic and presentation constants used by the sequencer and
// orchestrator. The original formulas carry unstated magic numbers
// (priority bonus, mock improvement figure); they are kept here as
// configuration instead of being hard-coded or second-guessed.
type Tuning struct {
	// Bonus subtracted from edge distance per priority level when the
	// sequencer scores candidate stops.
	PriorityWeight float64 `yaml:"priority_weight"`
	// Assumed average vehicle speed for converting distance to travel
	// time, in distance units per hour.
	AverageSpeed float64 `yaml:"average_speed"`
	// Fixed service duration added to the clock after each stop, in
	// hours.
	ServiceTime float64 `yaml:"service_time"`
	// Hour of day the synthetic ETA clock starts at.
	DayStartHour float64 `yaml:"day_start_hour"`
	// Hours added to the ETA clock per completed stop.
	StepDuration float64 `yaml:"step_duration"`
	// Largest unscheduled stop count for which the exhaustive
	// permutation tour search may run.
	MaxBruteForceStops int `yaml:"max_brute_force_stops"`
	// Base and spread of the reported improvement percentage. Cosmetic
	// output carried over from the original system.
	ImprovementBase   float64 `yaml:"improvement_base"`
	ImprovementSpread float64 `yaml:"improvement_spread"`
}

// Defaults matching the original system's constants.
func DefaultTuning() Tuning {
	return Tuning{
		PriorityWeight:     10,
		AverageSpeed:       50,
		ServiceTime:        0.5,
		DayStartHour:       9,
		StepDuration:       1,
		MaxBruteForceStops: 10,
		ImprovementBase:    15,
		ImprovementSpread:  10,
	}
}
