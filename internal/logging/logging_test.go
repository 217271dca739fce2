package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", "debug", true, true},
		{"info", "info", false, true},
		{"warn", "warn", false, false},
		{"invalid falls back to info", "loud", false, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			lm := NewWriterLogManager(&buf, test.level)

			lm.LogDebug("debug line")
			lm.LogInfo("info line")
			lm.LogWarning("warning line")

			assert.Equal(t, test.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, test.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")))
			assert.Contains(t, buf.String(), "warning line")
		})
	}
}

func TestLogKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	lm := NewWriterLogManager(&buf, "info")

	lm.LogInfo("stop recording", "session", "abc", "events", "2", "dangling")
	lm.LogError("Replay aborted", errors.New("press failed"), "request", "r1")

	out := buf.String()
	assert.Contains(t, out, "stop recording")
	assert.Contains(t, out, "session=abc")
	assert.Contains(t, out, "events=2")
	assert.NotContains(t, out, "dangling")
	assert.Contains(t, out, `error="press failed"`)
	assert.Contains(t, out, "request=r1")
}

func TestLogManagerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	lm := NewLogManager(Options{Directory: dir, Level: "info", File: true, Console: &console})
	lm.LogInfo("start recording")
	path := lm.GetLogFilePath()
	lm.Close()

	require.NotEmpty(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "start recording")
	assert.Contains(t, console.String(), "start recording")

	files, err := lm.ListLogFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestLogManagerConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	lm := NewLogManager(Options{Directory: t.TempDir(), Level: "info", Console: &console})

	lm.LogInfo("hello")
	assert.Empty(t, lm.GetLogFilePath())
	assert.Contains(t, console.String(), "hello")
	lm.Close()
}

func TestLogManagerFallsBackWhenDirectoryUnusable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	var console bytes.Buffer
	lm := NewLogManager(Options{Directory: filepath.Join(blocker, "logs"), File: true, Console: &console})

	assert.Empty(t, lm.GetLogFilePath())
	assert.Contains(t, console.String(), "Failed to create logs directory")
}
