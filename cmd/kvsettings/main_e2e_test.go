package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share the global color and logger state and so do not run in
// parallel.

func writeTestConfig(t *testing.T) (configPath, settingsPath string) {
	t.Helper()
	return writeTestConfigIn(t, t.TempDir())
}

func writeTestConfigIn(t *testing.T, dir string) (configPath, settingsPath string) {
	t.Helper()

	settingsPath = filepath.Join(dir, "settings.json")
	content := fmt.Sprintf(`settings_path: %s
journal:
  path: %s
logging:
  path: %s
`, settingsPath, filepath.Join(dir, "journal.db"), filepath.Join(dir, "kvsettings.log"))

	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath, settingsPath
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := createRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestE2E_SetGetListClear(t *testing.T) {
	configPath, settingsPath := writeTestConfig(t)

	_, err := execute(t, configPath, "set", "theme", "dark")
	require.NoError(t, err)
	_, err = execute(t, configPath, "set", "size", "12")
	require.NoError(t, err)

	out, err := execute(t, configPath, "get", "size")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)

	out, err = execute(t, configPath, "list")
	require.NoError(t, err)
	assert.Equal(t, "size = 12\ntheme = \"dark\"\n", out)

	_, err = execute(t, configPath, "clear", "theme")
	require.NoError(t, err)

	_, err = execute(t, configPath, "has", "theme")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)

	content, err := os.ReadFile(settingsPath) //nolint:gosec // test temp path
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"size\": 12\n}", string(content))

	out, err = execute(t, configPath, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "clear")
	assert.NotContains(t, out, "set")
}

func TestE2E_FileFlagOverridesConfig(t *testing.T) {
	configPath, settingsPath := writeTestConfig(t)
	other := filepath.Join(t.TempDir(), "other.json")

	_, err := execute(t, configPath, "--file", other, "set", "k", "true")
	require.NoError(t, err)

	content, err := os.ReadFile(other) //nolint:gosec // test temp path
	require.NoError(t, err)
	assert.Contains(t, string(content), `"k": true`)
	assert.NoFileExists(t, settingsPath)
}

func TestE2E_CorruptedFile(t *testing.T) {
	configPath, settingsPath := writeTestConfig(t)
	require.NoError(t, os.WriteFile(settingsPath, []byte(`[1, 2]`), 0o600))

	_, err := execute(t, configPath, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a JSON object")
}

func TestE2E_FailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	configPath, settingsPath := writeTestConfigIn(t, dir)
	require.NoError(t, os.WriteFile(settingsPath, []byte(`"scalar"`), 0o600))

	_, err := execute(t, configPath, "get", "anything")
	require.Error(t, err)

	_, err = execute(t, configPath, "has", "anything-else")
	require.Error(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "kvsettings.log")) //nolint:gosec // test temp path
	require.NoError(t, err)
	assert.Contains(t, string(content), `"command":"get"`)
	assert.Contains(t, string(content), "command failed")
	assert.Contains(t, string(content), "must be a JSON object")
}

func TestE2E_MissingKeyIsNotLogged(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeTestConfigIn(t, dir)

	_, err := execute(t, configPath, "has", "absent")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)

	content, err := os.ReadFile(filepath.Join(dir, "kvsettings.log")) //nolint:gosec // test temp path
	if err == nil {
		assert.NotContains(t, string(content), "command failed")
	}
}

func TestE2E_BackupRestore(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	_, err := execute(t, configPath, "set", "mode", "a")
	require.NoError(t, err)
	out, err := execute(t, configPath, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to")

	_, err = execute(t, configPath, "set", "mode", "b")
	require.NoError(t, err)
	_, err = execute(t, configPath, "restore", "--yes")
	require.NoError(t, err)

	out, err = execute(t, configPath, "get", "mode")
	require.NoError(t, err)
	assert.Equal(t, "\"a\"\n", out)
}

func TestE2E_Config(t *testing.T) {
	configPath, settingsPath := writeTestConfig(t)

	out, err := execute(t, configPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, settingsPath)
	assert.Contains(t, out, "enabled: true")
}
