package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToFile(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "nested", "kvsettings.log")

	l, err := New(Options{Path: logFile})
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	l.Info().Str("key", "value").Msg("test message")

	content, err := os.ReadFile(logFile) //nolint:gosec // controlled log file path in test
	require.NoError(t, err)
	assert.Contains(t, string(content), "test message")
	assert.Contains(t, string(content), `"key":"value"`)
}

func TestLoggerWriterAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Level: "warn"})
	require.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	assert.Equal(t, 1, strings.Count(output, "\n"))
}

func TestLoggerInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Writer: &bytes.Buffer{}, Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoggerRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := New(Options{})
	require.Error(t, err)
}

func TestLoggerRotateAndCloseTwice(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "kvsettings.log")
	l, err := New(Options{Path: logFile})
	require.NoError(t, err)

	l.Info().Msg("before rotation")
	require.NoError(t, l.Rotate())

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

// Replaces the global logger, so not parallel.
func TestSetGlobal(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	l.SetGlobal()
	log.Info().Msg("through the global logger")

	assert.Contains(t, buf.String(), "through the global logger")
}
