package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const dirPerms = 0o755

// Open returns the backend of the given kind at path. When a persistent backend can't be
// opened, Open logs a warning and falls back to a MemoryBackend so the app keeps working
// for the session without persistence. An unknown kind is an error.
func Open(ctx context.Context, kind, path string) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch kind {
	case BackendSQLite:
		backend, err = openSQLite(ctx, path)
	case BackendBadger:
		backend, err = NewBadgerBackend(path)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (choose %s, %s, or %s)",
			kind, BackendSQLite, BackendBadger, BackendMemory)
	}

	if err != nil {
		log.Warn().Err(err).Str("backend", kind).Str("path", path).
			Msg("falling back to in-memory storage; changes will not be saved")

		return NewMemoryBackend(), nil
	}

	log.Info().Str("backend", kind).Str("path", path).Msg("opened storage")

	return backend, nil
}

func openSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return nil, fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	return NewSQLiteBackend(ctx, path)
}
