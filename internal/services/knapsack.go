package services

import (
	"fmt"
	"sort"

	"optiroute/internal/domain"
)

// PlanCapacity selects deliveries maximizing total profit under the
// vehicle load bound.
//
// Exact mode runs 0/1 dynamic programming over integer capacity; the
// table is O(n*capacity), so very large capacities need pre-scaling or
// an approximation. That is an inherent boundary of the method, not a
// defect. Fractional mode is the greedy LP relaxation: its value is an
// upper bound on any whole-item plan and the selection is an estimate,
// not an executable plan.
//
// An empty delivery set yields a well-formed zero result.
func PlanCapacity(deliveries []domain.Delivery, capacity int, mode domain.SelectionMode) (domain.SelectionResult, error) {
	if capacity <= 0 {
		return domain.SelectionResult{}, fmt.Errorf("plan capacity: capacity must be positive, got %d", capacity)
	}

	result := domain.SelectionResult{Mode: mode}
	if len(deliveries) == 0 {
		result.RemainingCapacity = float64(capacity)
		return result, nil
	}

	switch mode {
	case domain.SelectExact:
		result.Selected, result.TotalValue, result.TotalWeight = knapsack01(deliveries, capacity)
	case domain.SelectFractional:
		result.Selected, result.TotalValue, result.TotalWeight = fractionalKnapsack(deliveries, capacity)
	default:
		return domain.SelectionResult{}, fmt.Errorf("plan capacity: %w: %q", domain.ErrUnknownSelectionMode, mode)
	}

	result.RemainingCapacity = float64(capacity) - result.TotalWeight
	result.CapacityUtilization = utilization(result.TotalWeight, float64(capacity))
	return result, nil
}

// knapsack01 fills the classic (item x capacity) DP table and
// backtracks from the final cell: a value change between rows means
// the item was taken.
func knapsack01(deliveries []domain.Delivery, capacity int) ([]domain.SelectedItem, float64, float64) {
	n := len(deliveries)

	table := make([][]float64, n+1)
	for i := range table {
		table[i] = make([]float64, capacity+1)
	}

	for i := 1; i <= n; i++ {
		load := deliveries[i-1].Load
		profit := deliveries[i-1].Profit
		for w := 0; w <= capacity; w++ {
			table[i][w] = table[i-1][w]
			if load <= w && table[i-1][w-load]+profit > table[i][w] {
				table[i][w] = table[i-1][w-load] + profit
			}
		}
	}

	selected := []domain.SelectedItem{}
	totalWeight := 0
	w := capacity
	for i := n; i >= 1; i-- {
		if table[i][w] != table[i-1][w] {
			selected = append(selected, domain.SelectedItem{Delivery: deliveries[i-1], Fraction: 1.0})
			totalWeight += deliveries[i-1].Load
			w -= deliveries[i-1].Load
		}
	}

	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}
	return selected, table[n][capacity], float64(totalWeight)
}

// fractionalKnapsack takes items in descending profit/load order,
// whole items first, then a fraction of exactly one item. Ratios are
// computed into a side table; the caller's deliveries are never
// touched or re-sorted.
func fractionalKnapsack(deliveries []domain.Delivery, capacity int) ([]domain.SelectedItem, float64, float64) {
	order := make([]int, len(deliveries))
	ratios := make([]float64, len(deliveries))
	for i, d := range deliveries {
		order[i] = i
		if d.Load > 0 {
			ratios[i] = d.Profit / float64(d.Load)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ratios[order[a]] > ratios[order[b]]
	})

	selected := []domain.SelectedItem{}
	totalValue := 0.0
	totalWeight := 0.0
	remaining := float64(capacity)

	for _, idx := range order {
		d := deliveries[idx]
		load := float64(d.Load)

		if remaining >= load {
			selected = append(selected, domain.SelectedItem{Delivery: d, Fraction: 1.0})
			totalValue += d.Profit
			totalWeight += load
			remaining -= load
			continue
		}

		if remaining > 0 {
			fraction := remaining / load
			selected = append(selected, domain.SelectedItem{Delivery: d, Fraction: fraction})
			totalValue += d.Profit * fraction
			totalWeight += load * fraction
			remaining = 0
		}
		break
	}

	return selected, totalValue, totalWeight
}

// Per-delivery resource usage for one named constraint.
type ConstraintFunc func(domain.Delivery) float64

// SelectUnderConstraints greedily admits deliveries under several
// simultaneous budget limits. Each delivery is scored by profit
// discounted for how much of each budget it consumes, then admitted in
// score order while every budget still holds. A heuristic, not an
// exact multi-dimensional knapsack.
func SelectUnderConstraints(
	deliveries []domain.Delivery,
	limits map[string]float64,
	usage map[string]ConstraintFunc,
) ([]domain.SelectedItem, float64) {
	if len(deliveries) == 0 || len(limits) == 0 {
		return nil, 0
	}

	scores := make([]float64, len(deliveries))
	for i, d := range deliveries {
		score := d.Profit
		for name, limit := range limits {
			fn, ok := usage[name]
			if !ok || limit <= 0 {
				continue
			}
			score *= 1 - (fn(d)/limit)*0.5
		}
		scores[i] = score
	}

	order := make([]int, len(deliveries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	used := make(map[string]float64, len(limits))
	selected := []domain.SelectedItem{}
	totalValue := 0.0

	for _, idx := range order {
		d := deliveries[idx]
		fits := true
		for name, limit := range limits {
			fn, ok := usage[name]
			if !ok {
				continue
			}
			if used[name]+fn(d) > limit {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		selected = append(selected, domain.SelectedItem{Delivery: d, Fraction: 1.0})
		totalValue += d.Profit
		for name, fn := range usage {
			if _, ok := limits[name]; ok {
				used[name] += fn(d)
			}
		}
	}

	return selected, totalValue
}

// utilization guards the zero-capacity division instead of failing.
func utilization(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return used / capacity * 100
}
