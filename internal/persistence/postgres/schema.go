package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema is the idempotent DDL for the tamscan tables. Records and scores
// are JSONB blobs keyed by ticker; the category and data-quality columns
// are denormalized for cheap listing.
const Schema = `
CREATE TABLE IF NOT EXISTS companies (
	ticker          TEXT PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	future_category TEXT NOT NULL,
	data_quality    DOUBLE PRECISION NOT NULL DEFAULT 0,
	record          JSONB NOT NULL,
	scores          JSONB,
	last_updated    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS companies_category_idx ON companies (future_category);

CREATE TABLE IF NOT EXISTS watchlist_entries (
	name       TEXT NOT NULL,
	ticker     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (name, ticker)
);
`

// EnsureSchema applies the DDL. Safe to run at every startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Connect opens and pings a postgres connection pool.
func Connect(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}
