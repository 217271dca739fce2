package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/taglme/clickmacro/internal/macro"
)

// LogLister is the part of the log manager the console banner reads.
type LogLister interface {
	GetLogFilePath() string
	ListLogFiles() ([]string, error)
}

// ConsoleUI prints the startup banner.
type ConsoleUI struct {
	out  io.Writer
	logs LogLister
}

// NewConsoleUI creates a banner writer.
func NewConsoleUI(out io.Writer, logs LogLister) *ConsoleUI {
	return &ConsoleUI{out: out, logs: logs}
}

// DisplayStartup shows the version, the active hotkeys and the log location.
func (ui *ConsoleUI) DisplayStartup(hotkeys []*macro.HotkeyDefinition) {
	fmt.Fprintln(ui.out)
	fmt.Fprintln(ui.out, "┌─────────────────────────────────────────────────────────┐")
	fmt.Fprintf(ui.out, "│  Click Macro %-42s │\n", Version)
	for _, def := range hotkeys {
		fmt.Fprintf(ui.out, "│  %-20s %-33s │\n", def.Name, describe(def.Action))
	}
	logFile := "console only"
	if path := ui.logs.GetLogFilePath(); path != "" {
		logFile = filepath.Base(path)
	}
	fmt.Fprintf(ui.out, "│  Log File: %-44s │\n", logFile)
	fmt.Fprintln(ui.out, "└─────────────────────────────────────────────────────────┘")
	fmt.Fprintln(ui.out)
}

// DisplayLogAccessInfo lists earlier log files.
func (ui *ConsoleUI) DisplayLogAccessInfo() {
	files, err := ui.logs.ListLogFiles()
	if err != nil || len(files) == 0 {
		return
	}
	fmt.Fprintln(ui.out, "Available log files:")
	for _, file := range files {
		fmt.Fprintf(ui.out, "  • %s\n", filepath.Base(file))
	}
	fmt.Fprintln(ui.out)
}

func describe(action macro.Action) string {
	switch action {
	case macro.ActionToggleRecord:
		return "start/stop recording"
	case macro.ActionReplay:
		return "replay last recording"
	default:
		return action.String()
	}
}
