package services

import (
	"errors"
	"fmt"

	"optiroute/internal/domain"
)

var (
	ErrEmptyGraph = errors.New("graph has no edges")
	// Returned by Dijkstra/A* when the graph carries a negative edge
	// weight; their distance guarantees do not hold there and the
	// caller must use Bellman-Ford instead.
	ErrNegativeWeight = errors.New("negative edge weight requires bellman-ford")
)

// Outcome of a single shortest-path computation. An empty Path with an
// infinite Distance means "no path"; it is a valid result, not an
// error. NodesExplored is solver-specific: finalized nodes for
// Dijkstra/Bellman-Ford, expansions for A*.
type PathResult struct {
	Path             []string
	Distance         float64
	NodesExplored    int
	HasNegativeCycle bool
}

// Found reports whether the solver reached the target.
func (r PathResult) Found() bool { return len(r.Path) > 0 }

// SolveShortestPath dispatches to the solver selected by the closed
// algorithm enum. The TSP selector is not a point-to-point solver and
// is rejected here.
func SolveShortestPath(
	g domain.Graph,
	algorithm domain.Algorithm,
	source, target string,
	coords map[string]domain.Coordinates,
) (PathResult, error) {
	switch algorithm {
	case domain.AlgorithmDijkstra:
		return Dijkstra(g, source, target)
	case domain.AlgorithmAStar:
		return AStar(g, source, target, coords)
	case domain.AlgorithmBellmanFord:
		return BellmanFord(g, source, target)
	default:
		return PathResult{}, fmt.Errorf("solve shortest path: %w: %s", domain.ErrUnknownAlgorithm, algorithm)
	}
}

// reconstructPath walks a predecessor map backward from target to
// source and reverses the result. A reconstructed path that does not
// begin at source signals a corrupted predecessor chain and is treated
// as "no path".
func reconstructPath(previous map[string]string, source, target string) []string {
	if target != source {
		if _, ok := previous[target]; !ok {
			return nil
		}
	}

	path := []string{}
	current := target
	for {
		path = append(path, current)
		prev, ok := previous[current]
		if !ok {
			break
		}
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	if path[0] != source {
		return nil
	}
	return path
}
