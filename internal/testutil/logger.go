package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog" //nolint:depguard // Test utilities need direct zerolog access
)

// NewTestLogger returns a debug level logger and a function returning
// everything logged so far.
func NewTestLogger(t *testing.T) (logger zerolog.Logger, getLogOutput func() string) {
	t.Helper()

	var logOutput strings.Builder
	syncWriter := zerolog.SyncWriter(&logOutput)

	return zerolog.New(syncWriter).Level(zerolog.DebugLevel), logOutput.String
}
