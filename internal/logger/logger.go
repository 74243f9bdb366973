// Package logger sets up zerolog with lumberjack rotation for kvsettings.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// Lumberjack configuration constants
	maxLogSizeMB  = 10 // Maximum size in MB before rotation
	maxLogBackups = 3  // Number of old files to keep
	maxLogAgeDays = 30 // Maximum age in days before deletion
)

// Options configures a Logger.
type Options struct {
	// Writer overrides the log file, mainly for tests.
	Writer io.Writer
	Path   string
	Level  string
}

// Logger wraps zerolog.Logger with lumberjack for automatic log rotation
type Logger struct {
	zerolog.Logger
	lumberjack *lumberjack.Logger
	closeOnce  sync.Once
}

// createLumberjackLogger creates a lumberjack.Logger with standard configuration
func createLumberjackLogger(logFile string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
}

// New creates a new logger. Without a writer the log goes to a rotated file
// at opts.Path.
func New(opts Options) (*Logger, error) {
	l := &Logger{}

	writer := opts.Writer
	if writer == nil {
		if opts.Path == "" {
			return nil, fmt.Errorf("log path is required")
		}
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		l.lumberjack = createLumberjackLogger(opts.Path)
		writer = l.lumberjack
	}

	l.Logger = zerolog.New(writer).With().Timestamp().Logger()

	if opts.Level != "" {
		level, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		l.Logger = l.Logger.Level(level)
	}

	return l, nil
}

// SetGlobal installs the logger as the zerolog global logger.
func (l *Logger) SetGlobal() {
	log.Logger = l.Logger
}

// Rotate manually triggers log rotation if supported
func (l *Logger) Rotate() error {
	if l.lumberjack != nil {
		if err := l.lumberjack.Rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}
	return nil
}

// Close closes the lumberjack logger
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.lumberjack != nil {
			err = l.lumberjack.Close()
		}
	})
	return err //nolint:wrapcheck // simple logger cleanup
}
