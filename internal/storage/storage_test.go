package storage

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/kvsettings/internal/constants"
)

func TestStorageManagerPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		methodCall   func(*Manager) (string, error)
		expectedPath func() string
		name         string
	}{
		{
			name: "GetConfigDir returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetConfigDir()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.ConfigHome, constants.AppName)
			},
		},
		{
			name: "GetDataDir returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetDataDir()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.DataHome, constants.AppName)
			},
		},
		{
			name: "GetSettingsPath returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetSettingsPath()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.ConfigHome, constants.AppName, constants.SettingsFilename)
			},
		},
		{
			name: "GetConfigPath returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetConfigPath()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.ConfigHome, constants.AppName, constants.ConfigFilename)
			},
		},
		{
			name: "GetLogPath returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetLogPath()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.DataHome, constants.AppName, constants.LogFilename)
			},
		},
		{
			name: "GetJournalPath returns correct path",
			methodCall: func(m *Manager) (string, error) {
				return m.GetJournalPath()
			},
			expectedPath: func() string {
				return filepath.Join(xdg.DataHome, constants.AppName, constants.JournalFilename)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			manager := New(afero.NewMemMapFs())

			actualPath, err := tt.methodCall(manager)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPath(), actualPath)
		})
	}
}

func TestGetDataDirCreatesDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	manager := New(fs)

	dataDir, err := manager.GetDataDir()
	require.NoError(t, err)

	exists, err := afero.DirExists(fs, dataDir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureParent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	manager := New(fs)

	require.NoError(t, manager.EnsureParent("/work/nested/settings.json"))

	exists, err := afero.DirExists(fs, "/work/nested")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureParent_ReadOnlyFS(t *testing.T) {
	t.Parallel()

	manager := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := manager.EnsureParent("/work/settings.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}
