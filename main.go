package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"

	"github.com/taglme/clickmacro/internal/config"
	"github.com/taglme/clickmacro/internal/device"
	"github.com/taglme/clickmacro/internal/instance"
	"github.com/taglme/clickmacro/internal/keystate"
	"github.com/taglme/clickmacro/internal/logging"
	"github.com/taglme/clickmacro/internal/macro"
	"github.com/taglme/clickmacro/internal/notify"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			config.PrintUsage(os.Stdout)
			return
		}
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	if cfg.ShowVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}

	logManager := logging.NewLogManager(logging.Options{
		Directory: cfg.Logging.Directory,
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		Console:   os.Stdout,
	})
	notificationManager := notify.NewNotificationManager(cfg, logManager)

	code := run(cfg, logManager, notificationManager)
	logManager.Close()
	os.Exit(code)
}

func run(cfg *config.Config, logManager *logging.LogManager, notificationManager *notify.NotificationManager) int {
	logManager.LogInfo("Starting click macro", "version", Version, "config", cfg.Source)

	if path := logManager.GetLogFilePath(); path != "" && cfg.Logging.OpenOnStart {
		if err := open.Start(path); err != nil {
			logManager.LogWarning("Failed to open log file", "path", path, "error", err.Error())
		}
	}

	if cfg.Instance.Single {
		lock := instance.NewSingleInstance(AppName, "")
		acquired, err := lock.TryLock()
		if err != nil {
			logManager.LogError("Failed to acquire instance lock", err, "path", lock.LockPath())
			notificationManager.NotifyError("Failed to acquire instance lock")
			return 1
		}
		if !acquired {
			logManager.LogError("Another instance is already running", nil, "path", lock.LockPath())
			notificationManager.NotifyError("Another instance is already running")
			return 1
		}
		defer lock.Release()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hotkeys, err := macro.DefaultHotkeys(macro.NewKeyMapping())
	if err != nil {
		logManager.LogError("Failed to build hotkeys", err)
		notificationManager.NotifyError(fmt.Sprintf("Failed to start: %v", err))
		return 1
	}

	tracker := keystate.NewTracker()
	listener := device.NewListener(tracker, logManager)
	injector := device.NewInjector()

	engine, err := macro.NewEngine(macro.Config{
		DebounceWindow: cfg.Replay.DebounceWindow,
		StepPause:      cfg.Replay.StepPause,
		ReleaseTimeout: cfg.Replay.ModifierReleaseTimeout,
		Keys:           device.NewKeyState(tracker),
		Injector:       injector,
		Cursor:         injector,
		Hotkeys:        hotkeys,
		Logger:         logManager,
		Notifier:       notificationManager,
	})
	if err != nil {
		logManager.LogError("Failed to build engine", err)
		notificationManager.NotifyError(fmt.Sprintf("Failed to start: %v", err))
		return 1
	}

	if err := listener.Start(); err != nil {
		logManager.LogError("Failed to start device listener", err)
		notificationManager.NotifyError(fmt.Sprintf("Failed to start: %v", err))
		return 1
	}
	defer listener.Stop()

	for _, def := range hotkeys {
		logManager.LogInfo("Hotkey registered", "hotkey", def.Name, "action", def.Action.String())
	}
	ui := NewConsoleUI(os.Stdout, logManager)
	ui.DisplayStartup(hotkeys)
	ui.DisplayLogAccessInfo()
	notificationManager.NotifyInfo("Click Macro", "Ready. Ctrl+Shift+Alt+C records, Ctrl+Shift+Alt+X replays")

	if err := engine.Run(ctx, listener.Events()); err != nil {
		logManager.LogError("Engine stopped", err)
		notificationManager.NotifyError(fmt.Sprintf("Engine stopped: %v", err))
		return 1
	}

	logManager.LogInfo("Shutting down")
	return 0
}
