package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/matt-steen/reading-list/pkg/config"
	"github.com/matt-steen/reading-list/pkg/controller"
	"github.com/matt-steen/reading-list/pkg/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	filePerms = 0o666
	dirPerms  = 0o755
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	flags      config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "reading-list",
		Short:         "Track the books you read against a yearly goal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd.Context(), opts, func(library *books.Library) error {
				c, err := controller.NewController(cmd.Context(), library)
				if err != nil {
					return err
				}

				return c.Go()
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/reading-list/config.yaml)")
	flags.StringVar(&opts.flags.Storage.Backend, "backend", "", "storage backend: sqlite|badger|memory")
	flags.StringVar(&opts.flags.Storage.Path, "path", "", "sqlite file or badger directory")
	flags.StringVar(&opts.flags.Log.File, "log-file", "", "debug log file")
	flags.StringVar(&opts.flags.Log.Level, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newGoalCmd(opts))

	return root
}

// withLibrary resolves the configuration, starts logging and opens the library, then runs fn
// and closes everything again.
func withLibrary(ctx context.Context, opts *options, fn func(*books.Library) error) error {
	cfg, err := config.Load(opts.configPath, opts.flags)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	defer logFile.Close()

	log.Info().Str("backend", cfg.Storage.Backend).Str("path", cfg.Storage.Path).Msg("starting application...")

	backend, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}

	library := books.NewLibrary(ctx, storage.NewValueStore(backend))

	defer func() {
		if err := library.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing storage")
		}
	}()

	return fn(library)
}

func setupLogging(cfg *config.Config) (io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), dirPerms); err != nil {
		return nil, fmt.Errorf("error creating log directory: %w", err)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	}).Level(level)

	return logFile, nil
}
