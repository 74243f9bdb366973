// Package storage provides XDG-compliant path management for kvsettings.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/kvsettings/internal/constants"
)

// Manager resolves and prepares the directories kvsettings writes to.
type Manager struct {
	fs afero.Fs
}

// New creates a new storage manager with the given filesystem
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

// GetConfigDir returns the XDG config directory for kvsettings, creating it if necessary
func (m *Manager) GetConfigDir() (string, error) {
	return m.ensureDir(filepath.Join(xdg.ConfigHome, constants.AppName))
}

// GetDataDir returns the XDG data directory for kvsettings, creating it if necessary
func (m *Manager) GetDataDir() (string, error) {
	return m.ensureDir(filepath.Join(xdg.DataHome, constants.AppName))
}

// GetSettingsPath returns the default settings document path
func (m *Manager) GetSettingsPath() (string, error) {
	configDir, err := m.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, constants.SettingsFilename), nil
}

// GetConfigPath returns the CLI configuration file path
func (m *Manager) GetConfigPath() (string, error) {
	configDir, err := m.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, constants.ConfigFilename), nil
}

// GetLogPath returns the full path to the kvsettings log file
func (m *Manager) GetLogPath() (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, constants.LogFilename), nil
}

// GetJournalPath returns the full path to the mutation journal database
func (m *Manager) GetJournalPath() (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, constants.JournalFilename), nil
}

// EnsureParent creates the parent directory of path.
func (m *Manager) EnsureParent(path string) error {
	_, err := m.ensureDir(filepath.Dir(path))
	return err
}

func (m *Manager) ensureDir(dir string) (string, error) {
	if err := m.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}
