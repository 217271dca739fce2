package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taglme/clickmacro/internal/config"
)

type sent struct {
	kind, title, message string
}

type warnings struct {
	messages []string
}

func (w *warnings) LogWarning(message string, _ ...string) {
	w.messages = append(w.messages, message)
}

func newTestManager(cfg *config.Config, err error) (*NotificationManager, *[]sent, *warnings) {
	var calls []sent
	log := &warnings{}
	nm := NewNotificationManager(cfg, log)
	nm.notify = func(title, message string) error {
		calls = append(calls, sent{"notify", title, message})
		return err
	}
	nm.alert = func(title, message string) error {
		calls = append(calls, sent{"alert", title, message})
		return err
	}
	return nm, &calls, log
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	nm, calls, _ := newTestManager(cfg, nil)

	nm.NotifyRecording("Recording started")
	nm.NotifyReplay("Replay interrupted")
	nm.NotifyInfo("title", "info")
	nm.NotifyError("broken")

	assert.Empty(t, *calls)
}

func TestNotificationsFiltering(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = true
	cfg.Notifications.ShowReplay = false
	nm, calls, _ := newTestManager(cfg, nil)

	nm.NotifyRecording("Recording started")
	nm.NotifyReplay("Replay interrupted")
	nm.NotifyError("broken")

	assert.Equal(t, []sent{
		{"notify", appTitle, "Recording started"},
		{"alert", appTitle + " Error", "broken"},
	}, *calls)
}

func TestNotificationFailureIsLogged(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = true
	nm, _, log := newTestManager(cfg, errors.New("no notification daemon"))

	nm.NotifyInfo("title", "message")

	assert.Equal(t, []string{"Failed to send notification"}, log.messages)
}
