package services

import (
	"errors"
	"math"
	"testing"

	"optiroute/internal/domain"
)

func planDeliveries() []domain.Delivery {
	return []domain.Delivery{
		{ID: "d1", Location: "A", Load: 10, Profit: 60, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 24}},
		{ID: "d2", Location: "B", Load: 20, Profit: 100, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 24}},
		{ID: "d3", Location: "C", Load: 30, Profit: 120, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 24}},
	}
}

func TestPlanCapacityExact(t *testing.T) {
	r, err := PlanCapacity(planDeliveries(), 50, domain.SelectExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.TotalValue != 220 {
		t.Fatalf("total value = %v, want 220", r.TotalValue)
	}
	if r.TotalWeight != 50 {
		t.Fatalf("total weight = %v, want 50", r.TotalWeight)
	}
	if len(r.Selected) != 2 || r.Selected[0].ID != "d2" || r.Selected[1].ID != "d3" {
		ids := []string{}
		for _, s := range r.Selected {
			ids = append(ids, s.ID)
		}
		t.Fatalf("selected = %v, want [d2 d3]", ids)
	}
	for _, s := range r.Selected {
		if s.Fraction != 1.0 {
			t.Fatalf("exact mode fraction = %v for %s, want 1.0", s.Fraction, s.ID)
		}
	}
	if r.RemainingCapacity != 0 {
		t.Fatalf("remaining = %v, want 0", r.RemainingCapacity)
	}
	if r.CapacityUtilization != 100 {
		t.Fatalf("utilization = %v, want 100", r.CapacityUtilization)
	}
}

func TestPlanCapacityFractional(t *testing.T) {
	r, err := PlanCapacity(planDeliveries(), 50, domain.SelectFractional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// d1 and d2 fit whole (ratios 6 and 5), then 20/30 of d3.
	if r.TotalValue != 240 {
		t.Fatalf("total value = %v, want 240", r.TotalValue)
	}
	if r.TotalWeight != 50 {
		t.Fatalf("total weight = %v, want 50", r.TotalWeight)
	}
	if len(r.Selected) != 3 {
		t.Fatalf("selected %d items, want 3", len(r.Selected))
	}
	last := r.Selected[2]
	if last.ID != "d3" || math.Abs(last.Fraction-2.0/3.0) > 1e-9 {
		t.Fatalf("fractional tail = %s/%v, want d3 with fraction 2/3", last.ID, last.Fraction)
	}
}

// The LP relaxation dominates any whole-item plan.
func TestFractionalBoundsExact(t *testing.T) {
	exact, err := PlanCapacity(planDeliveries(), 50, domain.SelectExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frac, err := PlanCapacity(planDeliveries(), 50, domain.SelectFractional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exact.TotalValue > frac.TotalValue {
		t.Fatalf("exact value %v exceeds fractional bound %v", exact.TotalValue, frac.TotalValue)
	}
}

func TestPlanCapacityDoesNotMutateInput(t *testing.T) {
	deliveries := planDeliveries()

	if _, err := PlanCapacity(deliveries, 50, domain.SelectFractional); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := planDeliveries()
	for i := range want {
		if deliveries[i].ID != want[i].ID || deliveries[i].Profit != want[i].Profit {
			t.Fatalf("input slice mutated at %d: %+v", i, deliveries[i])
		}
	}
}

func TestPlanCapacityEmpty(t *testing.T) {
	r, err := PlanCapacity(nil, 40, domain.SelectExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Selected) != 0 || r.TotalValue != 0 || r.TotalWeight != 0 {
		t.Fatalf("empty input produced %+v", r)
	}
	if r.RemainingCapacity != 40 {
		t.Fatalf("remaining = %v, want 40", r.RemainingCapacity)
	}
}

func TestPlanCapacityRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := PlanCapacity(planDeliveries(), 0, domain.SelectExact); err == nil {
		t.Fatal("expected error for capacity 0")
	}
	if _, err := PlanCapacity(planDeliveries(), -5, domain.SelectExact); err == nil {
		t.Fatal("expected error for negative capacity")
	}
}

func TestPlanCapacityUnknownMode(t *testing.T) {
	_, err := PlanCapacity(planDeliveries(), 50, domain.SelectionMode("best-effort"))
	if !errors.Is(err, domain.ErrUnknownSelectionMode) {
		t.Fatalf("err = %v, want ErrUnknownSelectionMode", err)
	}
}

func TestSelectUnderConstraints(t *testing.T) {
	deliveries := planDeliveries()
	limits := map[string]float64{"load": 30, "stops": 2}
	usage := map[string]ConstraintFunc{
		"load":  func(d domain.Delivery) float64 { return float64(d.Load) },
		"stops": func(domain.Delivery) float64 { return 1 },
	}

	selected, total := SelectUnderConstraints(deliveries, limits, usage)

	// d1+d2 is the only pair under both budgets.
	if len(selected) != 2 {
		t.Fatalf("selected %d items, want 2", len(selected))
	}
	if total != 160 {
		t.Fatalf("total = %v, want 160", total)
	}
	load := 0
	for _, s := range selected {
		load += s.Load
	}
	if load > 30 {
		t.Fatalf("load budget violated: %d", load)
	}
}

func TestSelectUnderConstraintsEmpty(t *testing.T) {
	selected, total := SelectUnderConstraints(nil, map[string]float64{"load": 10}, nil)
	if len(selected) != 0 || total != 0 {
		t.Fatalf("got %v / %v, want empty", selected, total)
	}
}
