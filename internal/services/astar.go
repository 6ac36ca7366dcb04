package services

import (
	"container/heap"
	"fmt"
	"math"

	"optiroute/internal/domain"
)

// AStar computes the shortest path from source to target using
// Dijkstra's relaxation guided by a Euclidean-distance heuristic over
// the supplied coordinates. Nodes missing from coords fall back to a
// heuristic of zero, which degrades exploration order to Dijkstra's
// for that node without affecting correctness. Requires non-negative
// edge weights.
//
// NodesExplored reports the number of expansions, which can exceed the
// node count when a closed node is re-opened on a strictly better
// tentative distance.
func AStar(g domain.Graph, source, target string, coords map[string]domain.Coordinates) (PathResult, error) {
	if len(g) == 0 {
		return PathResult{}, fmt.Errorf("astar: %w", ErrEmptyGraph)
	}
	if g.HasNegativeEdge() {
		return PathResult{}, fmt.Errorf("astar: %w", ErrNegativeWeight)
	}

	h := func(node string) float64 {
		from, ok := coords[node]
		if !ok {
			return 0
		}
		to, ok := coords[target]
		if !ok {
			return 0
		}
		return from.DistanceTo(to)
	}

	gScore := map[string]float64{source: 0}
	previous := map[string]string{}
	inOpen := map[string]struct{}{source: {}}
	closed := map[string]struct{}{}

	pq := &distanceQueue{{node: source, priority: h(source)}}
	heap.Init(pq)

	explored := 0
	for pq.Len() > 0 {
		current := heap.Pop(pq).(queueItem)
		delete(inOpen, current.node)

		if _, done := closed[current.node]; done {
			continue
		}

		if current.node == target {
			path := reconstructPath(previous, source, target)
			if path == nil {
				break
			}
			return PathResult{Path: path, Distance: gScore[target], NodesExplored: explored}, nil
		}

		closed[current.node] = struct{}{}
		explored++

		for neighbor, weight := range g[current.node] {
			tentative := gScore[current.node] + weight

			best, seen := gScore[neighbor]
			if seen && tentative >= best {
				continue
			}

			// A strictly better route re-opens the node even after it
			// was closed; the heuristic is admissible but not
			// guaranteed consistent.
			delete(closed, neighbor)
			gScore[neighbor] = tentative
			previous[neighbor] = current.node

			// Membership tracking keeps duplicate queue entries
			// harmless: stale ones are skipped on pop via the closed
			// set rather than deleted from the heap.
			inOpen[neighbor] = struct{}{}
			heap.Push(pq, queueItem{node: neighbor, priority: tentative + h(neighbor)})
		}
	}

	return PathResult{Distance: math.Inf(1), NodesExplored: explored}, nil
}

// AStarMultiGoal returns the best path from source to any of the
// goals, accumulating expansion counts across the per-goal searches.
func AStarMultiGoal(g domain.Graph, source string, goals []string, coords map[string]domain.Coordinates) (PathResult, error) {
	best := PathResult{Distance: math.Inf(1)}
	for _, goal := range goals {
		r, err := AStar(g, source, goal, coords)
		if err != nil {
			return PathResult{}, fmt.Errorf("astar multi-goal: %w", err)
		}
		best.NodesExplored += r.NodesExplored
		if r.Found() && r.Distance < best.Distance {
			best.Path = r.Path
			best.Distance = r.Distance
		}
	}
	return best, nil
}
