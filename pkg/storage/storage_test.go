package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-steen/reading-list/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend reads fine but refuses every write, like a browser store over quota.
type failingBackend struct {
	*storage.MemoryBackend
}

func (f failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func getBackends(t *testing.T) map[string]storage.Backend {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	sqlite, err := storage.NewSQLiteBackend(ctx, filepath.Join(dir, "test.sqlite"))
	require.NoError(t, err)

	badger, err := storage.NewBadgerBackend(filepath.Join(dir, "badger"))
	require.NoError(t, err)

	backends := map[string]storage.Backend{
		storage.BackendSQLite: sqlite,
		storage.BackendBadger: badger,
		storage.BackendMemory: storage.NewMemoryBackend(),
	}

	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})

	return backends
}

func TestNewSQLiteBackendBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend, err := storage.NewSQLiteBackend(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(backend)
	assert.NotNil(err)
	assert.Equal("error running base sql: unable to open database file: no such file or directory", err.Error())
}

func TestNewSQLiteBackendIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "test.sqlite")

	backend, err := storage.NewSQLiteBackend(ctx, filename)
	assert.Nil(err)
	assert.Nil(backend.Set(ctx, "k", []byte(`"v"`)))
	assert.Nil(backend.Close())

	backend2, err := storage.NewSQLiteBackend(ctx, filename)
	assert.Nil(err)

	defer backend2.Close()

	value, err := backend2.Get(ctx, "k")
	assert.Nil(err)
	assert.Equal(`"v"`, string(value))
}

func TestBackendGetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, backend := range getBackends(t) {
		backend := backend

		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := backend.Get(ctx, "missing")
			assert.ErrorIs(err, storage.ErrNotFound)

			assert.Nil(backend.Set(ctx, "reading-goal", []byte("12")))
			assert.Nil(backend.Set(ctx, "reading-goal", []byte("20")))

			value, err := backend.Get(ctx, "reading-goal")
			assert.Nil(err)
			assert.Equal("20", string(value))
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend, err := storage.Open(context.Background(), "redis", "")
	assert.Nil(backend)
	assert.Equal(`unknown storage backend "redis" (choose sqlite, badger, or memory)`, err.Error())
}

func TestOpenFallsBackToMemory(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// a regular file can't be used as a directory, so the sqlite open has to fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.Nil(os.WriteFile(blocker, nil, 0o600))

	backend, err := storage.Open(context.Background(), storage.BackendSQLite, filepath.Join(blocker, "sub", "db.sqlite"))
	assert.Nil(err)
	assert.IsType(&storage.MemoryBackend{}, backend)
}

func TestOpenCreatesDirectory(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "nested", "reading-list.sqlite")

	backend, err := storage.Open(context.Background(), storage.BackendSQLite, path)
	assert.Nil(err)
	assert.IsType(&storage.SQLiteBackend{}, backend)
	assert.Nil(backend.Close())

	_, err = os.Stat(path)
	assert.Nil(err)
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	backend := storage.NewMemoryBackend()
	store := storage.NewValueStore(backend)

	assert.Equal(12, storage.Load(ctx, store, "reading-goal", 12))

	assert.Nil(backend.Set(ctx, "reading-goal", []byte("{not json")))
	assert.Equal(12, storage.Load(ctx, store, "reading-goal", 12))

	assert.Nil(backend.Set(ctx, "reading-goal", []byte(`"twelve"`)))
	assert.Equal(12, storage.Load(ctx, store, "reading-goal", 12))

	assert.Nil(backend.Set(ctx, "reading-goal", []byte("30")))
	assert.Equal(30, storage.Load(ctx, store, "reading-goal", 12))
}

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	for name, backend := range getBackends(t) {
		backend := backend

		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			store := storage.NewValueStore(backend)

			value := storage.NewValue(ctx, store, "entries", []entry{})
			assert.Empty(value.Get())

			want := []entry{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
			assert.Nil(value.Set(ctx, want))

			reloaded := storage.NewValue(ctx, store, "entries", []entry{})
			assert.Equal(want, reloaded.Get())
		})
	}
}

func TestValueSetWriteFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	mem := storage.NewMemoryBackend()
	assert.Nil(mem.Set(ctx, "reading-goal", []byte("12")))

	store := storage.NewValueStore(failingBackend{mem})
	value := storage.NewValue(ctx, store, "reading-goal", 1)
	assert.Equal(12, value.Get())

	err := value.Set(ctx, 40)
	assert.NotNil(err)

	// memory moved on; the stored value did not
	assert.Equal(40, value.Get())
	assert.Equal(12, storage.Load(ctx, store, "reading-goal", 1))
}
