// Package cli implements the kvsettings command-line operations on top of
// the settings store.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/kvsettings/internal/config"
	"github.com/wizzomafizzo/kvsettings/internal/journal"
	"github.com/wizzomafizzo/kvsettings/internal/logger"
	"github.com/wizzomafizzo/kvsettings/internal/prompt"
	"github.com/wizzomafizzo/kvsettings/internal/settings"
	"github.com/wizzomafizzo/kvsettings/internal/storage"
)

// ErrAborted is returned when the user declines a confirmation.
var ErrAborted = errors.New("aborted")

// Options contains configuration options for creating an App
type Options struct {
	Out      io.Writer
	Fs       afero.Fs
	Prompter prompt.Prompter
	// LogWriter replaces the rotated log file, mainly for tests.
	LogWriter    io.Writer
	ConfigPath   string
	SettingsPath string
	Color        bool
}

// App wires the settings store to its journal, logger and output.
type App struct {
	out      io.Writer
	prompter prompt.Prompter
	store    *settings.Store
	journal  *journal.Journal
	logger   *logger.Logger
	config   *config.Config
	color    bool
}

// NewApp loads the configuration and opens the settings store and journal.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	paths := storage.New(opts.Fs)

	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		if configPath, err = paths.GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err //nolint:wrapcheck // config errors carry their own context
	}
	if opts.SettingsPath != "" {
		cfg.SettingsPath = opts.SettingsPath
	}

	log, err := newLogger(paths, cfg, opts.LogWriter)
	if err != nil {
		return nil, err
	}

	app := &App{
		out:      opts.Out,
		prompter: opts.Prompter,
		logger:   log,
		config:   cfg,
		color:    opts.Color,
	}

	if err := app.openStore(paths, opts.Fs); err != nil {
		_ = app.Close()
		return nil, err
	}

	if cfg.Journal.Enabled {
		if err := app.openJournal(ctx, paths); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	return app, nil
}

func newLogger(paths *storage.Manager, cfg *config.Config, writer io.Writer) (*logger.Logger, error) {
	logPath := cfg.Logging.Path
	if logPath == "" && writer == nil {
		var err error
		if logPath, err = paths.GetLogPath(); err != nil {
			return nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
	}

	log, err := logger.New(logger.Options{Path: logPath, Level: cfg.Logging.Level, Writer: writer})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func (a *App) openStore(paths *storage.Manager, fs afero.Fs) error {
	settingsPath := a.config.SettingsPath
	if settingsPath == "" {
		var err error
		if settingsPath, err = paths.GetSettingsPath(); err != nil {
			return fmt.Errorf("failed to resolve settings path: %w", err)
		}
	} else if err := paths.EnsureParent(settingsPath); err != nil {
		return err //nolint:wrapcheck // storage errors name the directory
	}

	store, err := settings.Open(settingsPath,
		settings.WithFS(fs),
		settings.WithLogger(a.logger.With().Str("settings", settingsPath).Logger()),
	)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	a.store = store
	return nil
}

func (a *App) openJournal(ctx context.Context, paths *storage.Manager) error {
	journalPath := a.config.Journal.Path
	if journalPath == "" {
		var err error
		if journalPath, err = paths.GetJournalPath(); err != nil {
			return fmt.Errorf("failed to resolve journal path: %w", err)
		}
	}

	j, err := journal.Open(ctx, journalPath)
	if err != nil {
		return err //nolint:wrapcheck // journal errors carry their own context
	}
	a.journal = j
	return nil
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// SettingsPath returns the path of the open settings document.
func (a *App) SettingsPath() string {
	return a.store.Path()
}

// Logger returns the app logger.
func (a *App) Logger() *logger.Logger {
	return a.logger
}

// Close releases the store, journal and log file.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	return errors.Join(errs...)
}

// record journals a mutation. Journal failures are logged and never fail the
// mutation itself, which has already been written.
func (a *App) record(ctx context.Context, op, key string, value json.RawMessage) {
	a.logger.Info().Str("op", op).Str("key", key).Msg("settings changed")
	if a.journal == nil {
		return
	}

	err := a.journal.Record(ctx, journal.Record{
		Op:           op,
		Key:          key,
		Value:        string(value),
		SettingsPath: a.store.Path(),
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("op", op).Str("key", key).Msg("failed to journal mutation")
	}
}
