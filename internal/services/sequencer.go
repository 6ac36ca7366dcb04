package services

import (
	"fmt"
	"math"
	"sort"

	"optiroute/internal/domain"
)

// Result of a multi-stop sequencing run. Visits is the node order
// including the source (and the closing leg when one exists);
// Scheduled holds per-delivery copies tagged with timing details.
type SequenceResult struct {
	Visits        []string
	TotalDistance float64
	Scheduled     []domain.ScheduledDelivery
}

// SequenceRoute orders deliveries from source using a nearest-feasible
// -neighbor heuristic with time-window checks.
//
// At each step the candidate minimizing edgeDistance minus a priority
// bonus is chosen among unvisited deliveries directly reachable from
// the current node whose window can still be met. When no candidate is
// feasible the loop stops and a partial result is returned; callers
// must treat fewer scheduled deliveries than inputs as expected under
// infeasibility, not as a fault. A closing leg back to source is
// appended only when a direct edge exists; without one the return leg
// is omitted (known limitation of edge-local sequencing).
func SequenceRoute(g domain.Graph, source string, deliveries []domain.Delivery, tun domain.Tuning) SequenceResult {
	result := SequenceResult{Visits: []string{source}}
	if len(deliveries) == 0 {
		return result
	}

	// Stable candidate order keeps tie-breaking deterministic.
	unvisited := make([]domain.Delivery, len(deliveries))
	copy(unvisited, deliveries)
	sort.SliceStable(unvisited, func(i, j int) bool {
		if unvisited[i].Priority != unvisited[j].Priority {
			return unvisited[i].Priority < unvisited[j].Priority
		}
		return unvisited[i].Window.Start < unvisited[j].Window.Start
	})

	current := source
	clock := 0.0

	for len(unvisited) > 0 {
		bestIdx := -1
		bestScore := math.Inf(1)
		bestServiceStart := 0.0

		for i, d := range unvisited {
			weight, ok := g.Weight(current, d.Location)
			if !ok {
				continue
			}

			arrival := clock + weight/tun.AverageSpeed
			if arrival > d.Window.End {
				continue
			}

			// Arriving early means waiting for the window to open.
			serviceStart := math.Max(arrival, d.Window.Start)

			score := weight - d.Priority.Weight()*tun.PriorityWeight
			if score < bestScore {
				bestScore = score
				bestIdx = i
				bestServiceStart = serviceStart
			}
		}

		if bestIdx < 0 {
			break
		}

		chosen := unvisited[bestIdx]
		weight, _ := g.Weight(current, chosen.Location)

		result.Visits = append(result.Visits, chosen.Location)
		result.TotalDistance += weight
		current = chosen.Location
		clock = bestServiceStart + tun.ServiceTime

		result.Scheduled = append(result.Scheduled, domain.ScheduledDelivery{
			Delivery:     chosen,
			Status:       domain.StatusScheduled,
			ScheduledAt:  bestServiceStart,
			CompletionAt: bestServiceStart + tun.ServiceTime,
			Sequence:     len(result.Scheduled) + 1,
			StepDistance: weight,
			ETA:          formatClock(bestServiceStart),
		})

		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	if current != source {
		if weight, ok := g.Weight(current, source); ok {
			result.Visits = append(result.Visits, source)
			result.TotalDistance += weight
		}
	}

	return result
}

// NearestNeighborTour builds a tour over stops ignoring time windows,
// always moving to the closest directly connected unvisited stop. The
// tour ends early when no unvisited stop is reachable.
func NearestNeighborTour(g domain.Graph, source string, stops []string) ([]string, float64) {
	unvisited := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		if s != source {
			unvisited[s] = struct{}{}
		}
	}

	path := []string{source}
	current := source
	total := 0.0

	for len(unvisited) > 0 {
		nearest := ""
		best := math.Inf(1)
		for stop := range unvisited {
			if w, ok := g.Weight(current, stop); ok && (w < best || (w == best && stop < nearest)) {
				best = w
				nearest = stop
			}
		}
		if nearest == "" {
			break
		}

		path = append(path, nearest)
		total += best
		current = nearest
		delete(unvisited, nearest)
	}

	if current != source {
		if w, ok := g.Weight(current, source); ok {
			path = append(path, source)
			total += w
		}
	}
	return path, total
}

// BruteForceTour finds the distance-optimal closed tour over stops by
// exhaustive permutation search, ignoring time windows. Only valid for
// small instances; above maxStops the factorial blow-up makes it
// unusable and an error is returned instead of attempting it.
// Permutations with a missing edge (including the closing leg) are
// discarded; when no permutation is traversable the returned path is
// empty with infinite distance.
func BruteForceTour(g domain.Graph, source string, stops []string, maxStops int) ([]string, float64, error) {
	if len(stops) > maxStops {
		return nil, 0, fmt.Errorf("brute-force tour: %d stops exceeds limit %d", len(stops), maxStops)
	}

	best := []string(nil)
	bestDistance := math.Inf(1)

	perm := make([]string, len(stops))
	copy(perm, stops)

	var visit func(k int)
	visit = func(k int) {
		if k == len(perm) {
			distance := 0.0
			current := source
			for _, stop := range perm {
				w, ok := g.Weight(current, stop)
				if !ok {
					return
				}
				distance += w
				current = stop
			}
			w, ok := g.Weight(current, source)
			if !ok {
				return
			}
			distance += w

			if distance < bestDistance {
				bestDistance = distance
				tour := make([]string, 0, len(perm)+2)
				tour = append(tour, source)
				tour = append(tour, perm...)
				tour = append(tour, source)
				best = tour
			}
			return
		}
		for i := k; i < len(perm); i++ {
			perm[k], perm[i] = perm[i], perm[k]
			visit(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	visit(0)

	return best, bestDistance, nil
}

// formatClock renders fractional hours as an HH:MM clock reading.
func formatClock(hours float64) string {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h%24, m)
}
