package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/kvsettings/internal/prompt"
)

type testApp struct {
	*App
	out          *bytes.Buffer
	logs         *bytes.Buffer
	settingsPath string
}

// createTempConfig writes a config file pointing every path into a temp dir.
func createTempConfig(t *testing.T, journalEnabled bool) (configPath, settingsPath string) {
	t.Helper()

	dir := t.TempDir()
	settingsPath = filepath.Join(dir, "prefs", "settings.json")
	content := fmt.Sprintf(`settings_path: %s
journal:
  enabled: %t
  path: %s
logging:
  level: debug
`, settingsPath, journalEnabled, filepath.Join(dir, "journal.db"))

	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath, settingsPath
}

func newTestApp(t *testing.T, prompter prompt.Prompter) *testApp {
	t.Helper()
	return newTestAppWithJournal(t, prompter, true)
}

func newTestAppWithJournal(t *testing.T, prompter prompt.Prompter, journalEnabled bool) *testApp {
	t.Helper()

	configPath, settingsPath := createTempConfig(t, journalEnabled)
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	app, err := NewApp(context.Background(), Options{
		ConfigPath: configPath,
		Out:        out,
		LogWriter:  logs,
		Prompter:   prompter,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return &testApp{App: app, out: out, logs: logs, settingsPath: settingsPath}
}

type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) Prompt(string) (string, error) {
	if len(p.answers) == 0 {
		return "", fmt.Errorf("no scripted answer left")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (*scriptedPrompter) Close() error {
	return nil
}
