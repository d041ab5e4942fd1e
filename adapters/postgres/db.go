// Package postgres stores profiles and regards in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/dropregards/core"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    wallet_address TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT '',
    profile_image TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS regards (
    id UUID PRIMARY KEY,
    sender_wallet TEXT NOT NULL,
    sender_username TEXT NOT NULL DEFAULT '',
    recipient_wallet TEXT NOT NULL,
    recipient_username TEXT NOT NULL,
    amount NUMERIC(20, 9) NOT NULL CHECK (amount > 0),
    message TEXT NOT NULL,
    includes_nft BOOLEAN NOT NULL DEFAULT FALSE,
    nft_design TEXT NOT NULL DEFAULT '',
    transaction_signature TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS regards_sender_wallet_idx ON regards (sender_wallet);
CREATE INDEX IF NOT EXISTS regards_recipient_created_idx ON regards (recipient_wallet, created_at DESC);
`

// uniqueViolation is the PostgreSQL error code for a unique index conflict
const uniqueViolation = "23505"

// Open connects to PostgreSQL and checks the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate creates the tables and indexes if they do not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// mapError converts driver errors into domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", core.ErrConflict, pqErr.Constraint)
	}
	return err
}
