package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"aquasolar-cloud/internal/config"
)

// NewPostgresDB opens the durable store holding tenants, the four log
// streams and the consumption table.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
