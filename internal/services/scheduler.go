package services

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"optiroute/internal/domain"
)

// Problem-size thresholds for the adaptive dispatch. Exactly 20
// deliveries still run the exact DP; exactly 100 still run greedy.
const (
	dpMaxDeliveries     = 20
	greedyMaxDeliveries = 100
)

// ScheduleDeliveries picks a scheduling strategy from the delivery
// count alone and runs it:
//
//	n <= 20   exact DP over the capacity dimension (unit time cost;
//	          window feasibility is applied by the downstream ordering
//	          pass, not inside the recurrence, so it approximates)
//	n <= 100  greedy admission by priority then window start
//	n > 100   priority queue bounded by the time budget
//
// The result carries the algorithm actually used so the dispatch is
// verifiable at the boundary values. Inputs are never mutated; every
// outcome lives on a ScheduledDelivery copy.
func ScheduleDeliveries(deliveries []domain.Delivery, c domain.Constraints, tun domain.Tuning) (domain.ScheduleResult, error) {
	if err := c.Validate(); err != nil {
		return domain.ScheduleResult{}, fmt.Errorf("schedule deliveries: %w", err)
	}

	if len(deliveries) == 0 {
		return domain.ScheduleResult{AlgorithmUsed: domain.ScheduleNone}, nil
	}

	var result domain.ScheduleResult
	switch n := len(deliveries); {
	case n <= dpMaxDeliveries:
		result = dpSchedule(deliveries, c, tun)
	case n <= greedyMaxDeliveries:
		result = greedySchedule(deliveries, c, tun)
	default:
		result = prioritySchedule(deliveries, c, tun)
	}

	for _, sd := range result.Scheduled {
		result.TotalValue += sd.Profit
		result.CapacityUsed += sd.Load
	}
	result.CapacityUtilization = utilization(float64(result.CapacityUsed), float64(c.Capacity))
	scheduledRatio := float64(len(result.Scheduled)) / float64(len(deliveries))
	result.Efficiency = math.Min(100, result.CapacityUtilization*0.6+scheduledRatio*40)

	return result, nil
}

// greedySchedule admits deliveries in (priority desc, window start
// asc) order while both the capacity bound and the time window hold,
// tagging the rest with a terminal status.
func greedySchedule(deliveries []domain.Delivery, c domain.Constraints, tun domain.Tuning) domain.ScheduleResult {
	ordered := make([]domain.Delivery, len(deliveries))
	copy(ordered, deliveries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].Window.Start < ordered[j].Window.Start
	})

	result := domain.ScheduleResult{AlgorithmUsed: domain.ScheduleGreedy}
	capacityUsed := 0
	clock := 0.0

	for _, d := range ordered {
		if capacityUsed+d.Load > c.Capacity {
			result.Rejected = append(result.Rejected, domain.ScheduledDelivery{
				Delivery: d,
				Status:   domain.StatusCapacityExceeded,
			})
			continue
		}
		if clock > d.Window.End {
			result.Rejected = append(result.Rejected, domain.ScheduledDelivery{
				Delivery: d,
				Status:   domain.StatusMissedWindow,
			})
			continue
		}

		start := math.Max(clock, d.Window.Start)
		result.Scheduled = append(result.Scheduled, domain.ScheduledDelivery{
			Delivery:     d,
			Status:       domain.StatusScheduled,
			ScheduledAt:  start,
			CompletionAt: start + tun.ServiceTime,
			Sequence:     len(result.Scheduled) + 1,
			ETA:          formatClock(start),
		})
		capacityUsed += d.Load
		clock = start + tun.ServiceTime
	}

	return result
}

// dpSchedule reuses the exact knapsack recurrence for the capacity
// dimension, then lays the chosen deliveries onto the clock in
// selection order. Optimality covers value under capacity only.
func dpSchedule(deliveries []domain.Delivery, c domain.Constraints, tun domain.Tuning) domain.ScheduleResult {
	selected, _, _ := knapsack01(deliveries, c.Capacity)

	result := domain.ScheduleResult{AlgorithmUsed: domain.ScheduleDP}
	chosen := make(map[string]struct{}, len(selected))
	clock := 0.0

	for _, item := range selected {
		chosen[item.ID] = struct{}{}
		start := math.Max(clock, item.Window.Start)
		result.Scheduled = append(result.Scheduled, domain.ScheduledDelivery{
			Delivery:     item.Delivery,
			Status:       domain.StatusScheduled,
			ScheduledAt:  start,
			CompletionAt: start + tun.ServiceTime,
			Sequence:     len(result.Scheduled) + 1,
			ETA:          formatClock(start),
		})
		clock = start + tun.ServiceTime
	}

	for _, d := range deliveries {
		if _, ok := chosen[d.ID]; !ok {
			result.Rejected = append(result.Rejected, domain.ScheduledDelivery{
				Delivery: d,
				Status:   domain.StatusCapacityExceeded,
			})
		}
	}

	return result
}

// prioritySchedule pops a min-heap keyed by (priority desc, deadline
// asc, insertion order) and admits deliveries while the time budget
// allows. Everything not admitted is tagged missed_deadline.
func prioritySchedule(deliveries []domain.Delivery, c domain.Constraints, tun domain.Tuning) domain.ScheduleResult {
	pq := make(deadlineQueue, 0, len(deliveries))
	for i, d := range deliveries {
		pq = append(pq, deadlineEntry{delivery: d, order: i})
	}
	heap.Init(&pq)

	result := domain.ScheduleResult{AlgorithmUsed: domain.SchedulePriority}
	clock := 0.0

	for pq.Len() > 0 {
		entry := heap.Pop(&pq).(deadlineEntry)
		d := entry.delivery

		if clock >= c.TimeLimit || clock+tun.ServiceTime > d.Window.End {
			result.Rejected = append(result.Rejected, domain.ScheduledDelivery{
				Delivery: d,
				Status:   domain.StatusMissedDeadline,
			})
			continue
		}

		start := math.Max(clock, d.Window.Start)
		if start+tun.ServiceTime > c.TimeLimit {
			result.Rejected = append(result.Rejected, domain.ScheduledDelivery{
				Delivery: d,
				Status:   domain.StatusMissedDeadline,
			})
			continue
		}

		result.Scheduled = append(result.Scheduled, domain.ScheduledDelivery{
			Delivery:     d,
			Status:       domain.StatusScheduled,
			ScheduledAt:  start,
			CompletionAt: start + tun.ServiceTime,
			Sequence:     len(result.Scheduled) + 1,
			ETA:          formatClock(start),
		})
		clock = start + tun.ServiceTime
	}

	return result
}

type deadlineEntry struct {
	delivery domain.Delivery
	order    int
}

// Min-heap: highest priority first, then earlier deadline, then
// insertion order so equal keys pop deterministically.
type deadlineQueue []deadlineEntry

func (q deadlineQueue) Len() int { return len(q) }

func (q deadlineQueue) Less(i, j int) bool {
	a, b := q[i].delivery, q[j].delivery
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.Window.End != b.Window.End {
		return a.Window.End < b.Window.End
	}
	return q[i].order < q[j].order
}

func (q deadlineQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *deadlineQueue) Push(x interface{}) { *q = append(*q, x.(deadlineEntry)) }

func (q *deadlineQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
