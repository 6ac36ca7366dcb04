package ports

import (
	"context"

	"optiroute/internal/domain"
)

// RouteCache keeps a bounded list of the most recently computed
// routes for cheap retrieval without touching the database. Best
// effort: callers treat push failures as non-fatal.
type RouteCache interface {
	PushRoute(ctx context.Context, result domain.RouteResult) error
	RecentRoutes(ctx context.Context, n int) ([]domain.RouteResult, error)
}
