// Package storage persists JSON values under string keys. A Backend moves raw bytes; a
// ValueStore encodes and decodes them, and a Value keeps an in-memory mirror of one key.
package storage

import (
	"context"
	"errors"
)

// These constants name the supported backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// ErrNotFound is returned by a Backend when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// Backend reads and writes raw values by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
