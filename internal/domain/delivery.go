package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Delivery priority, ordered High > Normal > Low.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityNormal Priority = 2
	PriorityHigh   Priority = 3
)

var ErrUnknownPriority = errors.New("unknown priority")

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "normal":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Normal"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Weight is the numeric value used by scoring formulas. Unrecognized
// priorities score as Low rather than failing mid-solve.
func (p Priority) Weight() float64 {
	if p < PriorityLow || p > PriorityHigh {
		return float64(PriorityLow)
	}
	return float64(p)
}

// The [start, end] interval (in hours from start of day) during which
// a delivery may be serviced.
type TimeWindow struct {
	Start float64
	End   float64
}

func (w TimeWindow) Validate() error {
	if w.End < w.Start {
		return fmt.Errorf("time window end %.2f before start %.2f", w.End, w.Start)
	}
	return nil
}

// A single delivery request. Deliveries are immutable solver input;
// anything derived per run (scheduled time, status, sequence) lives on
// a ScheduledDelivery copy so the same slice can be reused across
// repeated or concurrent computations.
type Delivery struct {
	ID       string
	Name     string
	Location string
	Load     int
	Profit   float64
	Priority Priority
	Window   TimeWindow
}

func (d Delivery) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("delivery id must be non-empty")
	}
	if strings.TrimSpace(d.Location) == "" {
		return fmt.Errorf("delivery %s: location must be non-empty", d.ID)
	}
	if d.Load <= 0 {
		return fmt.Errorf("delivery %s: load must be positive, got %d", d.ID, d.Load)
	}
	if err := d.Window.Validate(); err != nil {
		return fmt.Errorf("delivery %s: %w", d.ID, err)
	}
	return nil
}
