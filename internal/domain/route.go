package domain

import "time"

// A single stop in an optimized route.
// Step distance is the graph distance attributed to reaching this
// stop; ETA is a synthetic clock reading (illustrative, not a hard
// scheduling guarantee).
type RouteStep struct {
	Seq        int
	Location   string
	DeliveryID string
	Distance   float64
	ETA        string
	Load       int
}

// Aggregate metrics for an optimized route.
// Efficiency is a derived score bounded at 100.
type RouteMetrics struct {
	TotalDistance       float64
	TotalTimeMinutes    int
	Deliveries          int
	CapacityUsed        int
	CapacityUtilization float64
	Efficiency          float64
}

// The result of a route optimization run.
// Unreachable counts deliveries skipped because no path to their
// location exists; a nonzero count marks a partial (still valid)
// result. RouteID is set only when a result sink accepted the route.
type RouteResult struct {
	RouteID       string
	Path          []string
	Steps         []RouteStep
	Metrics       RouteMetrics
	Algorithm     Algorithm
	ExecutionTime time.Duration
	NodesExplored int
	Unreachable   int
	Improvement   float64
}
