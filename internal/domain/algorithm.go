package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Route optimization algorithm selector. A closed enum so that the
// solver dispatch can be checked for exhaustiveness instead of
// comparing request strings deep inside the core.
type Algorithm int

const (
	AlgorithmDijkstra Algorithm = iota + 1
	AlgorithmAStar
	AlgorithmBellmanFord
	AlgorithmTSP
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dijkstra":
		return AlgorithmDijkstra, nil
	case "astar":
		return AlgorithmAStar, nil
	case "bellman":
		return AlgorithmBellmanFord, nil
	case "tsp":
		return AlgorithmTSP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDijkstra:
		return "dijkstra"
	case AlgorithmAStar:
		return "astar"
	case AlgorithmBellmanFord:
		return "bellman"
	case AlgorithmTSP:
		return "tsp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Request configuration for a route optimization run.
type RouteConfig struct {
	SourceLocation  string
	Algorithm       Algorithm
	VehicleCapacity int
}

func (c RouteConfig) Validate() error {
	if strings.TrimSpace(c.SourceLocation) == "" {
		return errors.New("route config: sourceLocation must be non-empty")
	}
	if c.Algorithm < AlgorithmDijkstra || c.Algorithm > AlgorithmTSP {
		return fmt.Errorf("route config: %w: %d", ErrUnknownAlgorithm, int(c.Algorithm))
	}
	if c.VehicleCapacity <= 0 {
		return fmt.Errorf("route config: vehicleCapacity must be positive, got %d", c.VehicleCapacity)
	}
	return nil
}
