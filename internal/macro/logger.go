package macro

// Logger receives operator diagnostics. *logging.LogManager implements it.
type Logger interface {
	LogDebug(message string, keyValuePairs ...string)
	LogInfo(message string, keyValuePairs ...string)
	LogWarning(message string, keyValuePairs ...string)
	LogError(message string, err error, keyValuePairs ...string)
}

// Notifier shows desktop notifications. *notify.NotificationManager implements it.
type Notifier interface {
	NotifyRecording(message string)
	NotifyReplay(message string)
	NotifyError(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string, ...string) {}
func (nopLogger) LogInfo(string, ...string) {}
func (nopLogger) LogWarning(string, ...string) {}
func (nopLogger) LogError(string, error, ...string) {}

type nopNotifier struct{}

func (nopNotifier) NotifyRecording(string) {}
func (nopNotifier) NotifyReplay(string) {}
func (nopNotifier) NotifyError(string) {}
