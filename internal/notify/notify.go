// Package notify shows desktop notifications for recorder and replay events.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/taglme/clickmacro/internal/config"
)

const appTitle = "Click Macro"

// Logger receives notification delivery failures.
type Logger interface {
	LogWarning(message string, keyValuePairs ...string)
}

// NotificationManager handles system notifications
type NotificationManager struct {
	enabled       bool
	showRecording bool
	showReplay    bool
	logger        Logger

	notify func(title, message string) error
	alert  func(title, message string) error
}

// NewNotificationManager creates a new notification manager
func NewNotificationManager(cfg *config.Config, logger Logger) *NotificationManager {
	return &NotificationManager{
		enabled:       cfg.Notifications.Enabled,
		showRecording: cfg.Notifications.ShowRecording,
		showReplay:    cfg.Notifications.ShowReplay,
		logger:        logger,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		alert: func(title, message string) error {
			return beeep.Alert(title, message, "")
		},
	}
}

// NotifyRecording reports a recording start or stop
func (nm *NotificationManager) NotifyRecording(message string) {
	if !nm.enabled || !nm.showRecording {
		return
	}
	nm.deliver(nm.notify, appTitle, message)
}

// NotifyReplay reports replay progress
func (nm *NotificationManager) NotifyReplay(message string) {
	if !nm.enabled || !nm.showReplay {
		return
	}
	nm.deliver(nm.notify, appTitle, message)
}

// NotifyInfo sends an informational notification
func (nm *NotificationManager) NotifyInfo(title, message string) {
	if !nm.enabled {
		return
	}
	nm.deliver(nm.notify, title, message)
}

// NotifyError sends an error notification
func (nm *NotificationManager) NotifyError(message string) {
	if !nm.enabled {
		return
	}
	nm.deliver(nm.alert, appTitle+" Error", message)
}

func (nm *NotificationManager) deliver(send func(title, message string) error, title, message string) {
	if err := send(title, message); err != nil && nm.logger != nil {
		nm.logger.LogWarning("Failed to send notification", "title", title, "error", err.Error())
	}
}
