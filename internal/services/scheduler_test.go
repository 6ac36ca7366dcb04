package services

import (
	"fmt"
	"testing"

	"optiroute/internal/domain"
)

// bulkDeliveries builds n unit-load deliveries with generous windows.
func bulkDeliveries(n int) []domain.Delivery {
	out := make([]domain.Delivery, n)
	for i := range out {
		out[i] = domain.Delivery{
			ID:       fmt.Sprintf("d%03d", i),
			Location: "A",
			Load:     1,
			Profit:   10,
			Priority: domain.PriorityNormal,
			Window:   domain.TimeWindow{End: 1000},
		}
	}
	return out
}

func wideConstraints() domain.Constraints {
	return domain.Constraints{Capacity: 10000, TimeLimit: 10000}
}

func TestScheduleDispatchBoundaries(t *testing.T) {
	cases := []struct {
		n    int
		want domain.ScheduleAlgorithm
	}{
		{1, domain.ScheduleDP},
		{20, domain.ScheduleDP},
		{21, domain.ScheduleGreedy},
		{100, domain.ScheduleGreedy},
		{101, domain.SchedulePriority},
	}

	for _, c := range cases {
		r, err := ScheduleDeliveries(bulkDeliveries(c.n), wideConstraints(), domain.DefaultTuning())
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", c.n, err)
		}
		if r.AlgorithmUsed != c.want {
			t.Fatalf("n=%d dispatched to %q, want %q", c.n, r.AlgorithmUsed, c.want)
		}
		if len(r.Scheduled) != c.n {
			t.Fatalf("n=%d scheduled %d under unconstrained limits", c.n, len(r.Scheduled))
		}
	}
}

func TestScheduleEmptyInput(t *testing.T) {
	r, err := ScheduleDeliveries(nil, wideConstraints(), domain.DefaultTuning())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.AlgorithmUsed != domain.ScheduleNone {
		t.Fatalf("algorithm = %q, want %q", r.AlgorithmUsed, domain.ScheduleNone)
	}
	if len(r.Scheduled) != 0 || len(r.Rejected) != 0 || r.TotalValue != 0 {
		t.Fatalf("empty input produced %+v", r)
	}
}

func TestScheduleInvalidConstraints(t *testing.T) {
	_, err := ScheduleDeliveries(bulkDeliveries(3), domain.Constraints{Capacity: 0, TimeLimit: 8}, domain.DefaultTuning())
	if err == nil {
		t.Fatal("expected constraint validation error")
	}
}

func TestDPSchedulePicksOptimalValue(t *testing.T) {
	deliveries := []domain.Delivery{
		{ID: "d1", Location: "A", Load: 10, Profit: 60, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 100}},
		{ID: "d2", Location: "B", Load: 20, Profit: 100, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 100}},
		{ID: "d3", Location: "C", Load: 30, Profit: 120, Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 100}},
	}

	r, err := ScheduleDeliveries(deliveries, domain.Constraints{Capacity: 50, TimeLimit: 100}, domain.DefaultTuning())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.AlgorithmUsed != domain.ScheduleDP {
		t.Fatalf("algorithm = %q, want dp", r.AlgorithmUsed)
	}
	if r.TotalValue != 220 {
		t.Fatalf("total value = %v, want 220", r.TotalValue)
	}
	if r.CapacityUsed != 50 {
		t.Fatalf("capacity used = %d, want 50", r.CapacityUsed)
	}
	if len(r.Rejected) != 1 || r.Rejected[0].ID != "d1" {
		t.Fatalf("rejected = %+v, want d1 only", r.Rejected)
	}
	if r.Rejected[0].Status != domain.StatusCapacityExceeded {
		t.Fatalf("rejected status = %q", r.Rejected[0].Status)
	}

	// Chosen deliveries are laid on the clock back to back.
	if r.Scheduled[0].ScheduledAt != 0 || r.Scheduled[1].ScheduledAt != 0.5 {
		t.Fatalf("clock layout = %v then %v", r.Scheduled[0].ScheduledAt, r.Scheduled[1].ScheduledAt)
	}
}

func TestGreedyScheduleStatuses(t *testing.T) {
	deliveries := make([]domain.Delivery, 0, 25)
	deliveries = append(deliveries,
		domain.Delivery{ID: "fits", Location: "A", Load: 5, Profit: 50, Priority: domain.PriorityHigh, Window: domain.TimeWindow{End: 10}},
		domain.Delivery{ID: "tight", Location: "B", Load: 5, Profit: 50, Priority: domain.PriorityHigh, Window: domain.TimeWindow{End: 0.2}},
		domain.Delivery{ID: "heavy", Location: "C", Load: 100, Profit: 500, Priority: domain.PriorityLow, Window: domain.TimeWindow{End: 10}},
	)
	for i := 0; i < 22; i++ {
		deliveries = append(deliveries, domain.Delivery{
			ID: fmt.Sprintf("pad%02d", i), Location: "D", Load: 1, Profit: 1,
			Priority: domain.PriorityNormal, Window: domain.TimeWindow{End: 1000},
		})
	}

	r, err := ScheduleDeliveries(deliveries, domain.Constraints{Capacity: 30, TimeLimit: 100}, domain.DefaultTuning())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.AlgorithmUsed != domain.ScheduleGreedy {
		t.Fatalf("algorithm = %q, want greedy", r.AlgorithmUsed)
	}

	statuses := map[string]domain.DeliveryStatus{}
	for _, sd := range r.Scheduled {
		statuses[sd.ID] = sd.Status
	}
	for _, sd := range r.Rejected {
		statuses[sd.ID] = sd.Status
	}

	if statuses["fits"] != domain.StatusScheduled {
		t.Fatalf("fits status = %q", statuses["fits"])
	}
	// High priority sorts first, so "fits" (earlier window start tie
	// broken by stable order) runs 0.0-0.5 and the clock passes the
	// 0.2h window of "tight".
	if statuses["tight"] != domain.StatusMissedWindow {
		t.Fatalf("tight status = %q, want missed_window", statuses["tight"])
	}
	if statuses["heavy"] != domain.StatusCapacityExceeded {
		t.Fatalf("heavy status = %q, want capacity_exceeded", statuses["heavy"])
	}
}

func TestPriorityScheduleOrdering(t *testing.T) {
	deliveries := make([]domain.Delivery, 0, 102)
	deliveries = append(deliveries,
		domain.Delivery{ID: "late-deadline", Location: "A", Load: 1, Profit: 10, Priority: domain.PriorityHigh, Window: domain.TimeWindow{End: 900}},
		domain.Delivery{ID: "early-deadline", Location: "B", Load: 1, Profit: 10, Priority: domain.PriorityHigh, Window: domain.TimeWindow{End: 200}},
	)
	for i := 0; i < 100; i++ {
		deliveries = append(deliveries, domain.Delivery{
			ID: fmt.Sprintf("pad%03d", i), Location: "C", Load: 1, Profit: 1,
			Priority: domain.PriorityLow, Window: domain.TimeWindow{End: 1000},
		})
	}

	r, err := ScheduleDeliveries(deliveries, domain.Constraints{Capacity: 500, TimeLimit: 1000}, domain.DefaultTuning())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.AlgorithmUsed != domain.SchedulePriority {
		t.Fatalf("algorithm = %q, want priority", r.AlgorithmUsed)
	}

	// Same priority: the earlier deadline must pop first.
	if r.Scheduled[0].ID != "early-deadline" || r.Scheduled[1].ID != "late-deadline" {
		t.Fatalf("first two scheduled = %s, %s", r.Scheduled[0].ID, r.Scheduled[1].ID)
	}
}

func TestPriorityScheduleTimeBudget(t *testing.T) {
	deliveries := bulkDeliveries(101)

	// 0.5h per delivery against a 2h budget admits exactly 4.
	r, err := ScheduleDeliveries(deliveries, domain.Constraints{Capacity: 500, TimeLimit: 2}, domain.DefaultTuning())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Scheduled) != 4 {
		t.Fatalf("scheduled %d, want 4", len(r.Scheduled))
	}
	if len(r.Rejected) != 97 {
		t.Fatalf("rejected %d, want 97", len(r.Rejected))
	}
	for _, sd := range r.Rejected {
		if sd.Status != domain.StatusMissedDeadline {
			t.Fatalf("rejected status = %q, want missed_deadline", sd.Status)
		}
	}
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	deliveries := []domain.Delivery{
		{ID: "b", Location: "A", Load: 1, Profit: 1, Priority: domain.PriorityLow, Window: domain.TimeWindow{End: 10}},
		{ID: "a", Location: "B", Load: 1, Profit: 1, Priority: domain.PriorityHigh, Window: domain.TimeWindow{End: 10}},
	}

	if _, err := ScheduleDeliveries(deliveries, wideConstraints(), domain.DefaultTuning()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deliveries[0].ID != "b" || deliveries[1].ID != "a" {
		t.Fatalf("caller slice reordered: %v, %v", deliveries[0].ID, deliveries[1].ID)
	}
}
