package settings

import (
	"fmt"

	"github.com/spf13/afero"
)

const backupSuffix = ".bak"

// BackupPath returns the backup file path for the given settings file.
func BackupPath(path string) string {
	return path + backupSuffix
}

// HasBackup checks if a backup exists next to the settings document.
func (s *Store) HasBackup() bool {
	_, err := s.fs.Stat(BackupPath(s.path))
	return err == nil
}

// Backup copies the current document to its backup path. The document must
// be valid before it is copied.
func (s *Store) Backup() (string, error) {
	data, err := s.read("backup")
	if err != nil {
		return "", err
	}
	if _, err := decodeDocument(data); err != nil {
		return "", corruptedError("backup", err)
	}

	backupPath := BackupPath(s.path)
	if err := afero.WriteFile(s.fs, backupPath, data, 0o600); err != nil {
		return "", ioError("backup", fmt.Errorf("failed to write backup file: %w", err))
	}

	s.log.Debug().Str("backup", backupPath).Msg("backed up settings document")
	return backupPath, nil
}

// Restore replaces the document with the content of a backup file. The
// backup is validated first so a bad backup leaves the document untouched.
func (s *Store) Restore(backupPath string) error {
	data, err := afero.ReadFile(s.fs, backupPath)
	if err != nil {
		if isNotExist(err) {
			return ioError("restore", fmt.Errorf("backup file %s does not exist: %w", backupPath, err))
		}
		return ioError("restore", fmt.Errorf("failed to read backup file: %w", err))
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return corruptedError("restore", err)
	}
	return s.write("restore", doc)
}
