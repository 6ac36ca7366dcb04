package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"optiroute/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		load INTEGER NOT NULL,
		profit REAL NOT NULL,
		priority TEXT NOT NULL,
		window_start REAL NOT NULL,
		window_end REAL NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		steps TEXT NOT NULL,
		total_distance REAL NOT NULL,
		algorithm TEXT NOT NULL,
		execution_ms REAL NOT NULL,
		capacity_used INTEGER NOT NULL,
		efficiency REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_routes_created_at
	ON routes(created_at);
	`

	statements := []string{
		createDeliveriesQuery,
		createRoutesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DeliverySeed struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Load        int     `json:"load"`
	Profit      float64 `json:"profit"`
	Priority    string  `json:"priority"`
	WindowStart float64 `json:"window_start"`
	WindowEnd   float64 `json:"window_end"`
}

// LoadSeed parses and validates a JSON seed file of deliveries.
func LoadSeed(jsonPath string) ([]domain.Delivery, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed deliveries: read %q: %w", jsonPath, err)
	}

	var data []DeliverySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed deliveries: parse json: %w", err)
	}

	rows := make([]domain.Delivery, 0, len(data))
	for i, item := range data {
		priority, err := domain.ParsePriority(item.Priority)
		if err != nil {
			return nil, fmt.Errorf("seed deliveries: item at index %d: %w", i+1, err)
		}

		d := domain.Delivery{
			ID:       strings.TrimSpace(item.ID),
			Name:     strings.TrimSpace(item.Name),
			Location: strings.TrimSpace(item.Location),
			Load:     item.Load,
			Profit:   item.Profit,
			Priority: priority,
			Window:   domain.TimeWindow{Start: item.WindowStart, End: item.WindowEnd},
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("seed deliveries: item at index %d: %w", i+1, err)
		}
		rows = append(rows, d)
	}

	return rows, nil
}

// Populate a SQLite database with delivery data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := LoadSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer tx.Rollback()

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
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed deliveries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		_, err := stmt.Exec(d.ID, d.Name, d.Location, d.Load, d.Profit, d.Priority.String(), d.Window.Start, d.Window.End)
		if err != nil {
			return fmt.Errorf("seed deliveries: insert id=%s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return nil
}
