// Package config resolves where the reading list is stored and how the app logs.
//
// Values come from, highest priority first: command-line flags, environment variables, the
// YAML config file, and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/reading-list/pkg/storage"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const appDir = "reading-list"

// These are the environment variables read by Load.
const (
	EnvBackend  = "READING_LIST_BACKEND"
	EnvPath     = "READING_LIST_PATH"
	EnvLogFile  = "READING_LIST_LOG_FILE"
	EnvLogLevel = "READING_LIST_LOG_LEVEL"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	// Backend is sqlite, badger or memory.
	Backend string `yaml:"backend"`
	// Path is the sqlite file or the badger directory. Empty means the default for Backend.
	Path string `yaml:"path"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Load reads the config file at path and the process environment, then applies the
// non-empty fields of flags. An empty path means DefaultPath, which may be missing; an
// explicit path must exist.
func Load(path string, flags Config) (*Config, error) {
	return LoadFrom(path, flags, os.Getenv)
}

// LoadFrom is Load with the environment supplied by getenv.
func LoadFrom(path string, flags Config, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{Backend: storage.BackendSQLite},
		Log:     LogConfig{Level: zerolog.InfoLevel.String()},
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath(getenv)
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if v := getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = v
	}

	if v := getenv(EnvPath); v != "" {
		cfg.Storage.Path = v
	}

	if v := getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}

	cfg.merge(flags)
	cfg.fillDefaults(getenv)

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) merge(o Config) {
	if o.Storage.Backend != "" {
		c.Storage.Backend = o.Storage.Backend
	}

	if o.Storage.Path != "" {
		c.Storage.Path = o.Storage.Path
	}

	if o.Log.File != "" {
		c.Log.File = o.Log.File
	}

	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
}

// fillDefaults sets whatever paths are still empty.
func (c *Config) fillDefaults(getenv func(string) string) {
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(c.Storage.Backend, getenv)
	}

	if c.Log.File == "" {
		c.Log.File = filepath.Join(xdgDir(getenv, "XDG_STATE_HOME", ".local", "state"), appDir, "debug.log")
	}
}

// Validate checks the backend name and the log level.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendBadger, storage.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (choose %s, %s, or %s)",
			c.Storage.Backend, storage.BackendSQLite, storage.BackendBadger, storage.BackendMemory)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	return level, nil
}

// DefaultPath is the config file read when none is given.
func DefaultPath(getenv func(string) string) string {
	return filepath.Join(xdgDir(getenv, "XDG_CONFIG_HOME", ".config"), appDir, "config.yaml")
}

// DefaultStoragePath is where a backend keeps its data when no path is configured.
func DefaultStoragePath(backend string, getenv func(string) string) string {
	dir := filepath.Join(xdgDir(getenv, "XDG_DATA_HOME", ".local", "share"), appDir)

	switch backend {
	case storage.BackendBadger:
		return filepath.Join(dir, "reading-list.badger")
	case storage.BackendMemory:
		return ""
	}

	return filepath.Join(dir, "reading-list.sqlite")
}

func xdgDir(getenv func(string) string, env string, fallback ...string) string {
	if dir := getenv(env); dir != "" {
		return dir
	}

	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	return filepath.Join(append([]string{home}, fallback...)...)
}
