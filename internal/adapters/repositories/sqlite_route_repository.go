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

// SQLite-backed implementation of the RouteSink and RouteHistory ports.
// Steps are stored as a JSON column; the table is append-only.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

// Persist a computed route and return its generated id.
func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, result domain.RouteResult) (_ string, err error) {
	defer obs.Time(ctx, "route.store.save")(&err)

	if s.DB == nil {
		return "", errors.New("sqlite route repository: DB is nil")
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
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
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

// Return up to limit persisted routes, newest first.
func (s *SqliteRouteRepository) ListRoutes(ctx context.Context, limit int) (_ []ports.RouteRecord, err error) {
	defer obs.Time(ctx, "route.store.list")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
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
	LIMIT ?;
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

func scanRoute(rows *sql.Rows) (ports.RouteRecord, error) {
	var rec ports.RouteRecord
	var steps string

	err := rows.Scan(&rec.ID, &steps, &rec.TotalDistance, &rec.Algorithm,
		&rec.ExecutionMs, &rec.CapacityUsed, &rec.Efficiency, &rec.CreatedAt)
	if err != nil {
		return ports.RouteRecord{}, fmt.Errorf("scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(steps), &rec.Steps); err != nil {
		return ports.RouteRecord{}, fmt.Errorf("row id=%s: decode steps: %w", rec.ID, err)
	}

	return rec, nil
}
