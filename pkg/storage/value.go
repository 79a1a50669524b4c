package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ValueStore encodes values as JSON and writes them to a Backend.
type ValueStore struct {
	backend Backend
}

// NewValueStore wraps the given backend.
func NewValueStore(backend Backend) *ValueStore {
	return &ValueStore{backend: backend}
}

// Close closes the underlying backend.
func (s *ValueStore) Close() error {
	return s.backend.Close()
}

// Load decodes the value stored under key. A missing key, a failed read or a value that
// doesn't decode into T all return def; failures other than a missing key are logged.
func Load[T any](ctx context.Context, s *ValueStore, key string, def T) T {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		log.Debug().Str("key", key).Msg("no stored value, using default")

		return def
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("error reading stored value, using default")

		return def
	}

	if len(data) == 0 {
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("error parsing stored value, using default")

		return def
	}

	return value
}

// Save encodes value and writes it under key. Failures are logged and returned; whatever was
// stored before is left in place.
func (s *ValueStore) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("error encoding value")

		return fmt.Errorf("error encoding value for key %s: %w", key, err)
	}

	if err := s.backend.Set(ctx, key, data); err != nil {
		log.Error().Err(err).Str("key", key).Msg("error writing value")

		return err
	}

	return nil
}

// Value mirrors the value stored under one key. Reads come from memory; every Set writes the
// whole value through to the store.
type Value[T any] struct {
	store *ValueStore
	key   string
	value T
}

// NewValue loads key from the store, falling back to def.
func NewValue[T any](ctx context.Context, store *ValueStore, key string, def T) *Value[T] {
	return &Value[T]{
		store: store,
		key:   key,
		value: Load(ctx, store, key, def),
	}
}

// Key returns the storage key.
func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the in-memory value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set replaces the in-memory value and persists it. The in-memory value is replaced even when
// the write fails, in which case the error is returned.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	v.value = value

	return v.store.Save(ctx, v.key, value)
}
