package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"optiroute/internal/domain"
)

// Postgres-backed implementation of the DeliveryRepository port.
type SQLDeliveryRepository struct{ DB *sql.DB }

func NewSQLDeliveryRepository(db *sql.DB) *SQLDeliveryRepository {
	return &SQLDeliveryRepository{DB: db}
}

func (s *SQLDeliveryRepository) ListDeliveries(ctx context.Context) ([]domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("sql delivery repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		location,
		load,
		profit,
		priority,
		window_start,
		window_end
	FROM deliveries
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0, 64)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: %w", err)
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}

func (s *SQLDeliveryRepository) SaveDelivery(ctx context.Context, d domain.Delivery) error {
	if s.DB == nil {
		return errors.New("sql delivery repository: DB is nil")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("save delivery: %w", err)
	}

	query := `
	INSERT INTO deliveries (
		id,
		name,
		location,
		load,
		profit,
		priority,
		window_start,
		window_end
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		location = EXCLUDED.location,
		load = EXCLUDED.load,
		profit = EXCLUDED.profit,
		priority = EXCLUDED.priority,
		window_start = EXCLUDED.window_start,
		window_end = EXCLUDED.window_end;
	`
	_, err := s.DB.ExecContext(ctx, query,
		d.ID, d.Name, d.Location, d.Load, d.Profit, d.Priority.String(), d.Window.Start, d.Window.End)
	if err != nil {
		return fmt.Errorf("save delivery id=%s: %w", d.ID, err)
	}

	return nil
}
