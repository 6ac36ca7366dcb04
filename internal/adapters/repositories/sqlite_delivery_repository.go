package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"optiroute/internal/domain"
)

// SQLite-backed implementation of the DeliveryRepository port.
type SqliteDeliveryRepository struct{ DB *sql.DB }

func NewSqliteDeliveryRepository(db *sql.DB) *SqliteDeliveryRepository {
	return &SqliteDeliveryRepository{DB: db}
}

// Return all deliveries stored in the database.
func (s *SqliteDeliveryRepository) ListDeliveries(ctx context.Context) ([]domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite delivery repository: DB is nil")
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

// Insert or replace a delivery.
func (s *SqliteDeliveryRepository) SaveDelivery(ctx context.Context, d domain.Delivery) error {
	if s.DB == nil {
		return errors.New("sqlite delivery repository: DB is nil")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("save delivery: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO deliveries (
		id,
		name,
		location,
		load,
		profit,
		priority,
		window_start,
		window_end
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		d.ID, d.Name, d.Location, d.Load, d.Profit, d.Priority.String(), d.Window.Start, d.Window.End)
	if err != nil {
		return fmt.Errorf("save delivery id=%s: %w", d.ID, err)
	}

	return nil
}

// scanDelivery maps one deliveries row, parsing the stored priority
// label back into the enum.
func scanDelivery(rows *sql.Rows) (domain.Delivery, error) {
	var d domain.Delivery
	var priority string

	err := rows.Scan(&d.ID, &d.Name, &d.Location, &d.Load, &d.Profit, &priority, &d.Window.Start, &d.Window.End)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("scan row: %w", err)
	}

	p, err := domain.ParsePriority(priority)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("row id=%s: %w", d.ID, err)
	}
	d.Priority = p

	return d, nil
}
