package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"optiroute/internal/domain"
	"optiroute/internal/ports"
)

// OptimizeRoute is the top-level route optimization entry point.
//
// Deliveries are first filtered to the vehicle capacity (priority
// desc, then earlier window start, greedy admission), then routed with
// the configured algorithm: the point-to-point solvers visit the
// filtered deliveries in order and concatenate path segments, while
// tsp delegates to the time-window sequencer. Deliveries with no path
// to their location are skipped and counted rather than failing the
// whole route.
//
// The sink is optional; a failed save is logged and swallowed, and
// RouteID stays empty.
func OptimizeRoute(
	ctx context.Context,
	cfg domain.RouteConfig,
	deliveries []domain.Delivery,
	cityMap domain.CityMap,
	sink ports.RouteSink,
	tun domain.Tuning,
) (domain.RouteResult, error) {
	if err := cfg.Validate(); err != nil {
		return domain.RouteResult{}, fmt.Errorf("optimize route: %w", err)
	}
	if len(cityMap.Graph) == 0 {
		return domain.RouteResult{}, fmt.Errorf("optimize route: %w", ErrEmptyGraph)
	}
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			return domain.RouteResult{}, fmt.Errorf("optimize route: %w", err)
		}
	}

	start := time.Now()
	filtered := filterByCapacity(deliveries, cfg.VehicleCapacity)

	result := domain.RouteResult{Algorithm: cfg.Algorithm}
	var err error
	switch cfg.Algorithm {
	case domain.AlgorithmTSP:
		seq := SequenceRoute(cityMap.Graph, cfg.SourceLocation, filtered, tun)
		result.Path = seq.Visits
		result.Metrics.TotalDistance = seq.TotalDistance
		result.NodesExplored = len(seq.Visits)
		result.Unreachable = len(filtered) - len(seq.Scheduled)
	case domain.AlgorithmDijkstra, domain.AlgorithmAStar, domain.AlgorithmBellmanFord:
		result, err = chainShortestPaths(cfg, filtered, cityMap, result)
		if err != nil {
			return domain.RouteResult{}, fmt.Errorf("optimize route: %w", err)
		}
	default:
		return domain.RouteResult{}, fmt.Errorf("optimize route: %w: %d", domain.ErrUnknownAlgorithm, int(cfg.Algorithm))
	}

	result.Steps = buildSteps(cityMap.Graph, result.Path, filtered, tun)
	fillMetrics(&result, filtered, cfg.VehicleCapacity)
	result.ExecutionTime = time.Since(start)
	result.Improvement = tun.ImprovementBase +
		math.Mod(float64(result.ExecutionTime.Microseconds())/1000, tun.ImprovementSpread)

	if sink != nil {
		if id, saveErr := sink.SaveRoute(ctx, result); saveErr != nil {
			log.Printf("optimize route: save route failed (result still valid): %v", saveErr)
		} else {
			result.RouteID = id
		}
	}

	return result, nil
}

// filterByCapacity greedily admits deliveries in (priority desc,
// window start asc) order while the cumulative load fits. A first-pass
// filter, independent of any downstream scheduler.
func filterByCapacity(deliveries []domain.Delivery, capacity int) []domain.Delivery {
	ordered := make([]domain.Delivery, len(deliveries))
	copy(ordered, deliveries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].Window.Start < ordered[j].Window.Start
	})

	filtered := make([]domain.Delivery, 0, len(ordered))
	load := 0
	for _, d := range ordered {
		if load+d.Load <= capacity {
			filtered = append(filtered, d)
			load += d.Load
		}
	}
	return filtered
}

// chainShortestPaths visits the filtered deliveries in order with a
// point-to-point solver, concatenating segments and dropping the
// duplicate junction node at each join. Unreachable deliveries (and
// Bellman-Ford segments poisoned by a negative cycle) are skipped and
// counted.
func chainShortestPaths(
	cfg domain.RouteConfig,
	filtered []domain.Delivery,
	cityMap domain.CityMap,
	result domain.RouteResult,
) (domain.RouteResult, error) {
	coords := cityMap.CoordinateIndex()
	current := cfg.SourceLocation
	result.Path = []string{cfg.SourceLocation}

	for _, d := range filtered {
		leg, err := SolveShortestPath(cityMap.Graph, cfg.Algorithm, current, d.Location, coords)
		if err != nil {
			return domain.RouteResult{}, err
		}
		result.NodesExplored += leg.NodesExplored
		if !leg.Found() || leg.HasNegativeCycle {
			result.Unreachable++
			continue
		}

		result.Path = append(result.Path, leg.Path[1:]...)
		result.Metrics.TotalDistance += leg.Distance
		current = d.Location
	}

	if current != cfg.SourceLocation {
		leg, err := SolveShortestPath(cityMap.Graph, cfg.Algorithm, current, cfg.SourceLocation, coords)
		if err != nil {
			return domain.RouteResult{}, err
		}
		result.NodesExplored += leg.NodesExplored
		if leg.Found() && !leg.HasNegativeCycle {
			result.Path = append(result.Path, leg.Path[1:]...)
			result.Metrics.TotalDistance += leg.Distance
		}
	}

	return result, nil
}

// buildSteps walks the concatenated path, attributing the edge
// distance accumulated since the previous stop to each delivery stop
// and stamping a synthetic start-of-day ETA clock. The ETA is
// illustrative, not a scheduling guarantee.
func buildSteps(g domain.Graph, path []string, filtered []domain.Delivery, tun domain.Tuning) []domain.RouteStep {
	pending := make(map[string][]domain.Delivery, len(filtered))
	for _, d := range filtered {
		pending[d.Location] = append(pending[d.Location], d)
	}

	steps := []domain.RouteStep{}
	clock := 0.0
	load := 0
	legDistance := 0.0

	for i, node := range path {
		if i > 0 {
			if w, ok := g.Weight(path[i-1], node); ok {
				legDistance += w
			}
		}

		queue := pending[node]
		if len(queue) == 0 {
			continue
		}
		d := queue[0]
		pending[node] = queue[1:]

		load += d.Load
		steps = append(steps, domain.RouteStep{
			Seq:        len(steps) + 1,
			Location:   node,
			DeliveryID: d.ID,
			Distance:   legDistance,
			ETA:        formatClock(tun.DayStartHour + clock),
			Load:       load,
		})
		clock += tun.StepDuration
		legDistance = 0
	}

	return steps
}

func fillMetrics(result *domain.RouteResult, filtered []domain.Delivery, capacity int) {
	load := 0
	for _, d := range filtered {
		load += d.Load
	}

	result.Metrics.Deliveries = len(filtered)
	result.Metrics.TotalTimeMinutes = len(result.Steps) * 60
	result.Metrics.CapacityUsed = load
	result.Metrics.CapacityUtilization = utilization(float64(load), float64(capacity))
	result.Metrics.Efficiency = math.Min(100, result.Metrics.CapacityUtilization*0.6+40)
}

// IsInvalidInput reports whether err describes rejected input rather
// than a solver failure. Used by the HTTP layer for status mapping.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyGraph) ||
		errors.Is(err, domain.ErrUnknownAlgorithm) ||
		errors.Is(err, domain.ErrUnknownSelectionMode) ||
		errors.Is(err, domain.ErrUnknownPriority)
}
