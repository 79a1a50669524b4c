package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-steen/reading-list/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	home := t.TempDir()

	cfg, err := config.LoadFrom("", config.Config{}, env(map[string]string{"HOME": home}))
	assert.Nil(err)
	assert.Equal("sqlite", cfg.Storage.Backend)
	assert.Equal(filepath.Join(home, ".local", "share", "reading-list", "reading-list.sqlite"), cfg.Storage.Path)
	assert.Equal(filepath.Join(home, ".local", "state", "reading-list", "debug.log"), cfg.Log.File)
	assert.Equal("info", cfg.Log.Level)
	assert.Nil(cfg.Validate())
}

func TestLoadXDG(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg, err := config.LoadFrom("", config.Config{}, env(map[string]string{
		"XDG_DATA_HOME":   "/data",
		"XDG_STATE_HOME":  "/state",
		"XDG_CONFIG_HOME": filepath.Join(t.TempDir(), "nothing-here"),
	}))
	assert.Nil(err)
	assert.Equal("/data/reading-list/reading-list.sqlite", cfg.Storage.Path)
	assert.Equal("/state/reading-list/debug.log", cfg.Log.File)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := writeConfig(t, "storage:\n  backend: badger\nlog:\n  level: debug\n  file: /tmp/rl.log\n")

	cfg, err := config.LoadFrom(path, config.Config{}, env(map[string]string{"XDG_DATA_HOME": "/data"}))
	assert.Nil(err)
	assert.Equal("badger", cfg.Storage.Backend)
	assert.Equal("/data/reading-list/reading-list.badger", cfg.Storage.Path)
	assert.Equal("/tmp/rl.log", cfg.Log.File)

	level, err := cfg.LogLevel()
	assert.Nil(err)
	assert.Equal(zerolog.DebugLevel, level)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := writeConfig(t, "storage:\n  backend: badger\n  path: /file/path\nlog:\n  level: debug\n")
	getenv := env(map[string]string{
		config.EnvPath:     "/env/path",
		config.EnvLogLevel: "warn",
	})

	cfg, err := config.LoadFrom(path, config.Config{}, getenv)
	assert.Nil(err)
	assert.Equal("badger", cfg.Storage.Backend)
	assert.Equal("/env/path", cfg.Storage.Path)
	assert.Equal("warn", cfg.Log.Level)

	flags := config.Config{
		Storage: config.StorageConfig{Backend: "memory"},
		Log:     config.LogConfig{Level: "error"},
	}

	cfg, err = config.LoadFrom(path, flags, getenv)
	assert.Nil(err)
	assert.Equal("memory", cfg.Storage.Backend)
	assert.Equal("/env/path", cfg.Storage.Path)
	assert.Equal("error", cfg.Log.Level)
}

func TestLoadFlagBackendPicksDefaultPath(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	flags := config.Config{Storage: config.StorageConfig{Backend: "badger"}}

	cfg, err := config.LoadFrom("", flags, env(map[string]string{"XDG_DATA_HOME": "/data", "HOME": t.TempDir()}))
	assert.Nil(err)
	assert.Equal("/data/reading-list/reading-list.badger", cfg.Storage.Path)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), config.Config{}, env(nil))
	assert.Nil(cfg)
	assert.NotNil(err)
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg, err := config.LoadFrom(writeConfig(t, "storage: [\n"), config.Config{}, env(nil))
	assert.Nil(cfg)
	assert.Contains(err.Error(), "error parsing config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: "postgres"},
		Log:     config.LogConfig{Level: "info"},
	}
	assert.Equal(`unknown storage backend "postgres" (choose sqlite, badger, or memory)`, cfg.Validate().Error())

	cfg.Storage.Backend = "memory"
	cfg.Log.Level = "loud"
	assert.NotNil(cfg.Validate())

	cfg.Log.Level = "warn"
	assert.Nil(cfg.Validate())
}
