package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kvsettings", AppName)
	assert.Equal(t, "settings.json", SettingsFilename)
	assert.Equal(t, "config.yaml", ConfigFilename)
	assert.Equal(t, "kvsettings.log", LogFilename)
	assert.Equal(t, "journal.db", JournalFilename)
}
