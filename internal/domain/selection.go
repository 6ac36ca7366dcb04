package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Capacity planning mode.
type SelectionMode string

const (
	// Exact 0/1 knapsack over integer capacity.
	SelectExact SelectionMode = "01"
	// Greedy LP relaxation; the result is an upper-bound estimate,
	// not an executable plan (real deliveries are not divisible).
	SelectFractional SelectionMode = "fractional"
)

var ErrUnknownSelectionMode = errors.New("unknown selection mode")

func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "01", "":
		return SelectExact, nil
	case "fractional":
		return SelectFractional, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSelectionMode, s)
	}
}

// One selected delivery with its assigned fraction
// (always 1.0 in exact mode).
type SelectedItem struct {
	Delivery
	Fraction float64
}

// The result of a capacity planning request.
type SelectionResult struct {
	Selected            []SelectedItem
	TotalValue          float64
	TotalWeight         float64
	RemainingCapacity   float64
	CapacityUtilization float64
	Mode                SelectionMode
}
