package services

import (
	"container/heap"
	"fmt"
	"math"

	"optiroute/internal/domain"
)

// Dijkstra computes the shortest path from source to target using the
// classic relaxation loop over a min-priority queue. Each node is
// finalized at most once; the search stops early when the target is
// popped finalized. Requires non-negative edge weights.
//
// NodesExplored reports the number of finalized nodes.
func Dijkstra(g domain.Graph, source, target string) (PathResult, error) {
	if len(g) == 0 {
		return PathResult{}, fmt.Errorf("dijkstra: %w", ErrEmptyGraph)
	}
	if g.HasNegativeEdge() {
		return PathResult{}, fmt.Errorf("dijkstra: %w", ErrNegativeWeight)
	}

	distances := map[string]float64{source: 0}
	previous := map[string]string{}
	finalized := map[string]struct{}{}

	pq := &distanceQueue{{node: source, priority: 0}}
	heap.Init(pq)

	explored := 0
	for pq.Len() > 0 {
		current := heap.Pop(pq).(queueItem)

		// Stale entries for already-finalized nodes are skipped
		// instead of being removed from the queue eagerly.
		if _, done := finalized[current.node]; done {
			continue
		}
		finalized[current.node] = struct{}{}
		explored++

		if current.node == target {
			break
		}

		for neighbor, weight := range g[current.node] {
			if _, done := finalized[neighbor]; done {
				continue
			}

			tentative := current.priority + weight
			if best, ok := distances[neighbor]; !ok || tentative < best {
				distances[neighbor] = tentative
				previous[neighbor] = current.node
				heap.Push(pq, queueItem{node: neighbor, priority: tentative})
			}
		}
	}

	result := PathResult{
		Path:          reconstructPath(previous, source, target),
		Distance:      math.Inf(1),
		NodesExplored: explored,
	}
	if d, ok := distances[target]; ok && result.Found() {
		result.Distance = d
	} else {
		result.Path = nil
	}
	return result, nil
}

type queueItem struct {
	node     string
	priority float64
}

// Min-heap of pending nodes keyed by tentative distance
// (or f-score for A*).
type distanceQueue []queueItem

func (q distanceQueue) Len() int            { return len(q) }
func (q distanceQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q distanceQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }

func (q *distanceQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
