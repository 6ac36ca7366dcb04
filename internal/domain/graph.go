package domain

// Weighted directed adjacency map: node id -> neighbor id -> edge weight.
// Nodes that never appear as keys have no outgoing edges. A Graph is
// read-only planning input; solvers must never mutate it.
type Graph map[string]map[string]float64

// Edge is a single directed weighted connection, used by solvers that
// iterate the full edge set (Bellman-Ford).
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Return the weight of the direct edge from -> to, if one exists.
func (g Graph) Weight(from, to string) (float64, bool) {
	w, ok := g[from][to]
	return w, ok
}

// Report whether a direct edge from -> to exists.
func (g Graph) HasEdge(from, to string) bool {
	_, ok := g[from][to]
	return ok
}

// Return every node that appears as a source or destination of an edge.
func (g Graph) Nodes() []string {
	seen := make(map[string]struct{}, len(g))
	nodes := make([]string, 0, len(g))
	for node, neighbors := range g {
		if _, ok := seen[node]; !ok {
			seen[node] = struct{}{}
			nodes = append(nodes, node)
		}
		for neighbor := range neighbors {
			if _, ok := seen[neighbor]; !ok {
				seen[neighbor] = struct{}{}
				nodes = append(nodes, neighbor)
			}
		}
	}
	return nodes
}

// Return the full directed edge list.
func (g Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g))
	for from, neighbors := range g {
		for to, w := range neighbors {
			edges = append(edges, Edge{From: from, To: to, Weight: w})
		}
	}
	return edges
}

// Report whether any edge carries a negative weight.
// Dijkstra and A* reject such graphs instead of silently returning
// wrong distances; only Bellman-Ford tolerates them.
func (g Graph) HasNegativeEdge() bool {
	for _, neighbors := range g {
		for _, w := range neighbors {
			if w < 0 {
				return true
			}
		}
	}
	return false
}
