package domain

import "math"

// Immutable 2D map coordinates for a city location.
type Coordinates struct {
	X float64
	Y float64
}

// Euclidean distance to another coordinate pair. Used as the A*
// heuristic; edge weights are allowed to exceed it (admissibility),
// never the other way around.
func (c Coordinates) DistanceTo(o Coordinates) float64 {
	dx := o.X - c.X
	dy := o.Y - c.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// A named node on the city map with its drawing coordinates.
type Location struct {
	ID          string
	Name        string
	Coordinates Coordinates
}

// CityMap bundles the routing graph with the location metadata that
// some solvers (A*) need. Both parts are immutable planning input.
type CityMap struct {
	Graph     Graph
	Locations []Location
}

// Build a lookup from location id to coordinates for heuristic use.
// Locations absent from the index degrade the A* heuristic to zero
// for that node; they never affect correctness.
func (m CityMap) CoordinateIndex() map[string]Coordinates {
	idx := make(map[string]Coordinates, len(m.Locations))
	for _, loc := range m.Locations {
		idx[loc.ID] = loc.Coordinates
	}
	return idx
}
