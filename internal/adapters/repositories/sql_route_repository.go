package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"optiroute/internal/domain"
	"optiroute/internal/platform/obs"
	"optiroute/internal/ports"
)

// Postgres-backed implementation of the RouteSink and RouteHistory
// ports. Same shape as the SQLite adapter with the placeholder and
// upsert syntax of the pgx driver.
type SQLRouteRepository struct{ DB *sql.DB }

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

func (s *SQLRouteRepository) SaveRoute(ctx context.Context, result domain.RouteResult) (_ string, err error) {
	defer obs.Time(ctx, "route.store.save")(&err)

	if s.DB == nil {
		return "", errors.New("sql route repository: DB is nil")
	}

	steps, err := json.Marshal(result.Steps)
	if err != nil {
		return "", fmt.Errorf("save route: encode steps: %w", err)
	}

	id := uuid.New().String()
	query := `
	INSERT INTO routes (
		id,
		steps,
		total_distance,
		algorithm,
		execution_ms,
		capacity_used,
		efficiency,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = s.DB.ExecContext(ctx, query,
		id,
		string(steps),
		result.Metrics.TotalDistance,
		result.Algorithm.String(),
		float64(result.ExecutionTime.Microseconds())/1000,
		result.Metrics.CapacityUsed,
		result.Metrics.Efficiency,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("save route: insert routes row: %w", err)
	}

	return id, nil
}

func (s *SQLRouteRepository) ListRoutes(ctx context.Context, limit int) (_ []ports.RouteRecord, err error) {
	defer obs.Time(ctx, "route.store.list")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
	SELECT
		id,
		steps,
		total_distance,
		algorithm,
		execution_ms,
		capacity_used,
		efficiency,
		created_at
	FROM routes
	ORDER BY created_at DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	records := make([]ports.RouteRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return records, nil
}
