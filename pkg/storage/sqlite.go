package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// SQLiteBackend stores values in a single kv table of a sqlite database file.
type SQLiteBackend struct {
	conn *sql.DB
}

// NewSQLiteBackend connects to the sqlite database at the given filename and initializes the
// structure if not present.
func NewSQLiteBackend(ctx context.Context, filename string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	backend := &SQLiteBackend{conn: conn}

	if err := backend.initialize(ctx); err != nil {
		conn.Close()

		return nil, err
	}

	return backend, nil
}

func (b *SQLiteBackend) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := b.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if err := b.conn.Close(); err != nil {
		return fmt.Errorf("error closing sqlite db: %w", err)
	}

	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := b.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error loading key %s: %w", key, err)
	}

	return value, nil
}

// Set replaces the value stored under key.
func (b *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_datetime) VALUES ($1, $2, $3)
		     ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_datetime = excluded.updated_datetime`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error saving key %s: %w", key, err)
	}

	return nil
}
