package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// schema is applied in order on every start. Each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(250) NOT NULL,
		email VARCHAR(254) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		UNIQUE (lat, lon)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		initiator_id UUID NOT NULL REFERENCES users(id),
		category_id UUID NOT NULL REFERENCES categories(id),
		location_id UUID NOT NULL REFERENCES locations(id),
		state VARCHAR(16) NOT NULL CHECK (state IN ('PENDING', 'PUBLISHED', 'CANCELED')),
		participant_limit INTEGER NOT NULL DEFAULT 0 CHECK (participant_limit >= 0),
		request_moderation BOOLEAN NOT NULL DEFAULT TRUE,
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		title VARCHAR(120) NOT NULL,
		annotation VARCHAR(2000) NOT NULL,
		description VARCHAR(7000) NOT NULL,
		event_date TIMESTAMPTZ NOT NULL,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		published_on TIMESTAMPTZ,
		views BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS events_initiator_idx ON events (initiator_id)`,
	`CREATE INDEX IF NOT EXISTS events_state_date_idx ON events (state, event_date)`,
	`CREATE TABLE IF NOT EXISTS participation_requests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		requester_id UUID NOT NULL REFERENCES users(id),
		status VARCHAR(16) NOT NULL CHECK (status IN ('PENDING', 'CONFIRMED', 'REJECTED', 'CANCELED')),
		created TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS participation_requests_active_uq
		ON participation_requests (event_id, requester_id) WHERE status <> 'CANCELED'`,
	`CREATE INDEX IF NOT EXISTS participation_requests_event_status_idx
		ON participation_requests (event_id, status)`,
	`CREATE INDEX IF NOT EXISTS participation_requests_requester_idx
		ON participation_requests (requester_id)`,
}

// RunMigrations applies the schema in one transaction.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	logger.InfoContext(ctx, "migrations completed", "statements", len(schema))
	return nil
}
