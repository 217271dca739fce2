// Package logging writes operator logs to the console and a per-run log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const filePrefix = "clickmacro_"

// Options controls where a LogManager writes.
type Options struct {
	Directory string
	Level     string
	File      bool
	Console   io.Writer
}

// LogManager handles console and file logging.
type LogManager struct {
	logFile     *os.File
	logger      *logrus.Logger
	logFilePath string
	logsDir     string
}

// NewLogManager creates a log manager. If the log file cannot be created
// the manager falls back to console output only.
func NewLogManager(opts Options) *LogManager {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	lm := &LogManager{
		logger:  newLogger(console, opts.Level),
		logsDir: opts.Directory,
	}

	if !opts.File {
		return lm
	}

	if err := os.MkdirAll(lm.logsDir, 0755); err != nil {
		lm.LogWarning("Failed to create logs directory, logging to console only", "error", err.Error())
		return lm
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	lm.logFilePath = filepath.Join(lm.logsDir, fmt.Sprintf("%s%s.log", filePrefix, timestamp))

	file, err := os.OpenFile(lm.logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		lm.LogWarning("Failed to open log file, logging to console only", "error", err.Error())
		lm.logFilePath = ""
		return lm
	}
	lm.logFile = file
	lm.logger.SetOutput(io.MultiWriter(console, file))

	lm.LogInfo("Log file created", "path", lm.logFilePath)
	return lm
}

// NewWriterLogManager creates a console-only manager writing to w.
func NewWriterLogManager(w io.Writer, level string) *LogManager {
	return &LogManager{logger: newLogger(w, level)}
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
	logger.Out = out

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.Level = parsed
	return logger
}

func fields(keyValuePairs []string) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keyValuePairs); i += 2 {
		f[keyValuePairs[i]] = keyValuePairs[i+1]
	}
	return f
}

// LogDebug logs a debug message
func (lm *LogManager) LogDebug(message string, keyValuePairs ...string) {
	lm.logger.WithFields(fields(keyValuePairs)).Debug(message)
}

// LogInfo logs an informational message
func (lm *LogManager) LogInfo(message string, keyValuePairs ...string) {
	lm.logger.WithFields(fields(keyValuePairs)).Info(message)
}

// LogWarning logs a warning message
func (lm *LogManager) LogWarning(message string, keyValuePairs ...string) {
	lm.logger.WithFields(fields(keyValuePairs)).Warn(message)
}

// LogError logs an error message
func (lm *LogManager) LogError(message string, err error, keyValuePairs ...string) {
	entry := lm.logger.WithFields(fields(keyValuePairs))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

// GetLogFilePath returns the current log file path, empty when logging to
// the console only.
func (lm *LogManager) GetLogFilePath() string {
	return lm.logFilePath
}

// Close closes the log file
func (lm *LogManager) Close() {
	if lm.logFile != nil {
		lm.LogInfo("Closing log file")
		lm.logger.SetOutput(io.Discard)
		lm.logFile.Close()
		lm.logFile = nil
	}
}

// ListLogFiles returns every log file in the logs directory.
func (lm *LogManager) ListLogFiles() ([]string, error) {
	return filepath.Glob(filepath.Join(lm.logsDir, filePrefix+"*.log"))
}
