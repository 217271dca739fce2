package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	config, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, config.Replay.DebounceWindow)
	assert.Equal(t, 10*time.Millisecond, config.Replay.StepPause)
	assert.Equal(t, 2*time.Second, config.Replay.ModifierReleaseTimeout)
	assert.Equal(t, "logs", config.Logging.Directory)
	assert.Equal(t, "info", config.Logging.Level)
	assert.True(t, config.Logging.File)
	assert.False(t, config.Notifications.Enabled)
	assert.True(t, config.Instance.Single)
	assert.Empty(t, config.Source)
	assert.False(t, config.ShowVersion)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
replay:
  debounce_window: 250ms
  step_pause: 5ms
logging:
  level: debug
  open_on_start: true
notifications:
  enabled: true
  show_replay: false
instance:
  single: false
`)
	t.Setenv(EnvConfigPath, path)

	config, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, path, config.Source)
	assert.Equal(t, 250*time.Millisecond, config.Replay.DebounceWindow)
	assert.Equal(t, 5*time.Millisecond, config.Replay.StepPause)
	assert.Equal(t, 2*time.Second, config.Replay.ModifierReleaseTimeout, "unset keys keep their defaults")
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.OpenOnStart)
	assert.True(t, config.Notifications.Enabled)
	assert.True(t, config.Notifications.ShowRecording)
	assert.False(t, config.Notifications.ShowReplay)
	assert.False(t, config.Instance.Single)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
replay:
  debounce_window: 250ms
  step_pause: 5ms
logging:
  level: debug
`)
	t.Setenv(EnvConfigPath, "")

	config, err := Load([]string{"-config", path, "-debounce", "80ms", "-log-level", "warn", "-notify", "-release-timeout", "0s"})
	require.NoError(t, err)

	assert.Equal(t, 80*time.Millisecond, config.Replay.DebounceWindow)
	assert.Equal(t, 5*time.Millisecond, config.Replay.StepPause, "flags that were not given must not reset file values")
	assert.Equal(t, time.Duration(0), config.Replay.ModifierReleaseTimeout)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.True(t, config.Notifications.Enabled)
}

func TestLoadVersionFlag(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	config, err := Load([]string{"-version"})
	require.NoError(t, err)
	assert.True(t, config.ShowVersion)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		args []string
	}{
		{"missing explicit file", "", []string{"-config", filepath.Join(os.TempDir(), "clickmacro-does-not-exist.yaml")}},
		{"malformed yaml", "replay: [", nil},
		{"bad duration in yaml", "replay:\n  step_pause: soon\n", nil},
		{"zero debounce", "", []string{"-debounce", "0s"}},
		{"negative step pause", "", []string{"-step-pause", "-1ms"}},
		{"negative release timeout", "", []string{"-release-timeout", "-1s"}},
		{"bad log level", "", []string{"-log-level", "loud"}},
		{"empty log dir", "", []string{"-log-dir", ""}},
		{"unknown flag", "", []string{"-hotkey", "ctrl+q"}},
		{"positional argument", "", []string{"extra"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(EnvConfigPath, "")
			if test.file != "" {
				t.Setenv(EnvConfigPath, writeConfig(t, test.file))
			}

			_, err := Load(test.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadHelp(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	_, err := Load([]string{"-help"})
	assert.ErrorIs(t, err, flag.ErrHelp)

	var buf bytes.Buffer
	PrintUsage(&buf)
	assert.Contains(t, buf.String(), "-debounce")
	assert.Contains(t, buf.String(), "-release-timeout")
}
