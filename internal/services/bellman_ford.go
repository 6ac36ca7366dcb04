package services

import (
	"fmt"
	"math"

	"optiroute/internal/domain"
)

// BellmanFord computes the shortest path from source to target by
// relaxing every edge |V|-1 times, then runs one more pass to detect a
// negative-weight cycle reachable from source. When HasNegativeCycle
// is set the returned distances for cycle-reachable nodes are
// meaningless and must not be trusted. Tolerates negative edge
// weights; O(V*E).
func BellmanFord(g domain.Graph, source, target string) (PathResult, error) {
	if len(g) == 0 {
		return PathResult{}, fmt.Errorf("bellman-ford: %w", ErrEmptyGraph)
	}

	nodes := g.Nodes()
	edges := g.Edges()

	distances := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		distances[n] = math.Inf(1)
	}
	distances[source] = 0
	previous := map[string]string{}

	for i := 0; i < len(nodes)-1; i++ {
		changed := false
		for _, e := range edges {
			if du := distances[e.From]; !math.IsInf(du, 1) && du+e.Weight < distances[e.To] {
				distances[e.To] = du + e.Weight
				previous[e.To] = e.From
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// One extra pass: any further improvement means a negative cycle
	// reachable from source.
	hasNegativeCycle := false
	for _, e := range edges {
		if du := distances[e.From]; !math.IsInf(du, 1) && du+e.Weight < distances[e.To] {
			hasNegativeCycle = true
			break
		}
	}

	result := PathResult{
		Path:             reconstructPath(previous, source, target),
		Distance:         math.Inf(1),
		NodesExplored:    len(previous) + 1,
		HasNegativeCycle: hasNegativeCycle,
	}
	if result.Found() {
		result.Distance = distances[target]
	}
	return result, nil
}

// DetectNegativeCycle reports whether the graph contains a negative
// cycle anywhere, and returns the nodes traced along the offending
// predecessor chain. Zero-initializing every distance acts as a
// virtual super-source, so detection does not depend on which node the
// cycle happens to be reachable from.
func DetectNegativeCycle(g domain.Graph) (bool, []string) {
	if len(g) == 0 {
		return false, nil
	}

	nodes := g.Nodes()
	edges := g.Edges()

	distances := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		distances[n] = 0
	}
	previous := map[string]string{}

	for i := 0; i < len(nodes)-1; i++ {
		for _, e := range edges {
			if distances[e.From]+e.Weight < distances[e.To] {
				distances[e.To] = distances[e.From] + e.Weight
				previous[e.To] = e.From
			}
		}
	}

	var affected string
	for _, e := range edges {
		if distances[e.From]+e.Weight < distances[e.To] {
			affected = e.To
			break
		}
	}
	if affected == "" {
		return false, nil
	}

	// Walk the predecessor chain until it loops back on itself.
	cycle := []string{}
	visited := map[string]struct{}{}
	current := affected
	for {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		cycle = append(cycle, current)
		prev, ok := previous[current]
		if !ok {
			break
		}
		current = prev
	}
	return true, cycle
}
