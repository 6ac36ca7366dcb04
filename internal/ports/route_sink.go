package ports

import (
	"context"
	"time"

	"optiroute/internal/domain"
)

// RouteSink persists computed routes. The core calls it optionally and
// tolerates its absence; a save failure must never invalidate an
// otherwise successful computation.
type RouteSink interface {
	// Persist a route result and return its storage id.
	SaveRoute(ctx context.Context, result domain.RouteResult) (string, error)
}

// A persisted route, as returned by history queries.
type RouteRecord struct {
	ID            string
	Steps         []domain.RouteStep
	TotalDistance float64
	Algorithm     string
	ExecutionMs   float64
	CapacityUsed  int
	Efficiency    float64
	CreatedAt     time.Time
}

// RouteHistory retrieves previously persisted routes, newest first.
type RouteHistory interface {
	ListRoutes(ctx context.Context, limit int) ([]RouteRecord, error)
}
