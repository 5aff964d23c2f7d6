package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       UUID PRIMARY KEY,
		auth0_user_id TEXT NOT NULL UNIQUE,
		email         TEXT,
		name          TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS generic_models (
		model_id      TEXT PRIMARY KEY,
		category      TEXT NOT NULL,
		subcategory   TEXT,
		display_name  TEXT NOT NULL,
		description   TEXT,
		model_url     TEXT NOT NULL,
		thumbnail_url TEXT,
		width         DOUBLE PRECISION,
		depth         DOUBLE PRECISION,
		height        DOUBLE PRECISION,
		polygon_count INTEGER,
		file_size_mb  DOUBLE PRECISION,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS room_scans (
		scan_id             TEXT PRIMARY KEY,
		user_id             TEXT,
		room_dimensions     JSONB NOT NULL,
		detected_surfaces   JSONB NOT NULL DEFAULT '[]',
		scan_quality        DOUBLE PRECISION NOT NULL,
		processing_metadata JSONB,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_room_scans_user ON room_scans (user_id)`,
	`CREATE TABLE IF NOT EXISTS furniture_placements (
		id             BIGSERIAL PRIMARY KEY,
		placement_id   TEXT NOT NULL,
		scan_id        TEXT NOT NULL REFERENCES room_scans (scan_id),
		user_id        TEXT,
		model_id       TEXT NOT NULL,
		position       JSONB NOT NULL,
		rotation       JSONB NOT NULL,
		scale          JSONB NOT NULL,
		surface_id     TEXT,
		estimated_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		design_name    TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_furniture_placements_batch ON furniture_placements (placement_id)`,
	`CREATE INDEX IF NOT EXISTS idx_furniture_placements_scan ON furniture_placements (scan_id)`,
	`CREATE TABLE IF NOT EXISTS product_searches (
		search_id      BIGSERIAL PRIMARY KEY,
		user_id        TEXT,
		search_query   TEXT NOT NULL,
		category       TEXT,
		room_context   JSONB,
		existing_items TEXT[],
		results_count  INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS room_designs (
		design_id    UUID PRIMARY KEY,
		user_id      TEXT NOT NULL,
		scan_id      TEXT NOT NULL,
		placement_id TEXT NOT NULL,
		design_name  TEXT NOT NULL,
		total_cost   NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates missing tables and indexes. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
