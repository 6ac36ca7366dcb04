package domain

import "fmt"

// Terminal status of a delivery after a scheduling pass.
type DeliveryStatus string

const (
	StatusScheduled        DeliveryStatus = "scheduled"
	StatusMissedWindow     DeliveryStatus = "missed_window"
	StatusCapacityExceeded DeliveryStatus = "capacity_exceeded"
	StatusMissedDeadline   DeliveryStatus = "missed_deadline"
)

// Per-run scheduling outcome for one delivery. The embedded Delivery
// is a copy; schedulers never write to caller-owned deliveries.
type ScheduledDelivery struct {
	Delivery
	Status       DeliveryStatus
	ScheduledAt  float64
	CompletionAt float64
	Sequence     int
	StepDistance float64
	ETA          string
}

// Scheduling algorithm actually used by the adaptive scheduler.
type ScheduleAlgorithm string

const (
	ScheduleNone     ScheduleAlgorithm = "none"
	ScheduleDP       ScheduleAlgorithm = "dynamic_programming"
	ScheduleGreedy   ScheduleAlgorithm = "greedy"
	SchedulePriority ScheduleAlgorithm = "priority_based"
)

// Constraints for a scheduling request. TimeLimit is in the same time
// units as delivery windows (hours from start of day).
type Constraints struct {
	Capacity  int
	TimeLimit float64
}

func (c Constraints) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("constraints: capacity must be positive, got %d", c.Capacity)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("constraints: timeLimit must be non-negative, got %.2f", c.TimeLimit)
	}
	return nil
}

// Uniform result of any scheduling strategy.
// Scheduled holds only admitted deliveries; Rejected carries the ones
// tagged with a terminal failure status so callers can distinguish a
// partial schedule from full success.
type ScheduleResult struct {
	Scheduled           []ScheduledDelivery
	Rejected            []ScheduledDelivery
	TotalValue          float64
	CapacityUsed        int
	CapacityUtilization float64
	Efficiency          float64
	AlgorithmUsed       ScheduleAlgorithm
}
