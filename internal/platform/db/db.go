package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a database handle for one of the supported drivers ("sqlite"
// via modernc, "pgx" for postgres) and verify the connection. SQLite
// gets a single connection because the modernc driver serializes
// writers anyway.
func Open(driver, dsn string) (*sql.DB, error) {
	handle, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	switch driver {
	case "sqlite":
		handle.SetMaxOpenConns(1)
	default:
		handle.SetMaxOpenConns(10)
		handle.SetMaxIdleConns(10)
		handle.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := handle.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return handle, nil
}
