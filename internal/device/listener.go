package device

import (
	"sync"

	"github.com/pkg/errors"
	hook "github.com/robotn/gohook"

	"github.com/taglme/clickmacro/internal/fifo"
	"github.com/taglme/clickmacro/internal/keystate"
	"github.com/taglme/clickmacro/internal/macro"
)

// ErrListenerRunning is returned when Start is called twice.
var ErrListenerRunning = errors.New("device listener is already running")

// Listener forwards global input events into an unbounded queue. The hook
// callback never blocks on the consumer.
type Listener struct {
	queue   *fifo.Queue[macro.DeviceEvent]
	tracker *keystate.Tracker
	logger  macro.Logger

	start func() chan hook.Event
	end   func()

	mutex   sync.Mutex
	running bool
	done    chan struct{}
}

// NewListener creates a listener feeding the given key state tracker.
func NewListener(tracker *keystate.Tracker, logger macro.Logger) *Listener {
	return &Listener{
		queue:   fifo.New[macro.DeviceEvent](),
		tracker: tracker,
		logger:  logger,
		start:   hook.Start,
		end:     hook.End,
	}
}

// Events returns the stream of translated device events. It closes after Stop.
func (l *Listener) Events() <-chan macro.DeviceEvent {
	return l.queue.Out()
}

// Start installs the global hook and begins forwarding events.
func (l *Listener) Start() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.running {
		return ErrListenerRunning
	}

	evChan := l.start()
	l.running = true
	l.done = make(chan struct{})
	go l.forward(evChan, l.done)

	l.logger.LogInfo("Device listener started")
	return nil
}

// Stop removes the hook and closes the event stream. Events not yet read
// are discarded, so Events must not be consumed after Stop.
func (l *Listener) Stop() {
	l.mutex.Lock()
	if !l.running {
		l.mutex.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mutex.Unlock()

	l.end()
	<-done
	l.queue.Close()
	go func() {
		for range l.queue.Out() {
		}
	}()
	l.logger.LogInfo("Device listener stopped")
}

// IsRunning returns true if the hook is installed.
func (l *Listener) IsRunning() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.running
}

func (l *Listener) forward(evChan chan hook.Event, done chan struct{}) {
	defer close(done)

	for e := range evChan {
		switch e.Kind {
		case hook.KeyDown:
			key := macro.Key(e.Keycode)
			if l.tracker.IsHeld(key) {
				// auto-repeat
				continue
			}
			l.tracker.Press(key)
		case hook.KeyUp:
			l.tracker.Release(macro.Key(e.Keycode))
		}

		ev, ok := translate(e)
		if !ok {
			continue
		}
		if err := l.queue.Push(ev); err != nil {
			return
		}
	}
}

// translate maps a hook event onto the engine's event model. Presses are
// KeyDown and MouseDown; KeyHold is the keycode-less typed notification and
// MouseHold the button release.
func translate(e hook.Event) (macro.DeviceEvent, bool) {
	switch e.Kind {
	case hook.MouseMove, hook.MouseDrag:
		return macro.MoveEvent(macro.Point{X: int(e.X), Y: int(e.Y)}), true
	case hook.MouseDown:
		return macro.ButtonEvent(macro.ButtonFromID(e.Button)), true
	case hook.KeyDown:
		return macro.KeyEvent(macro.Key(e.Keycode)), true
	default:
		return macro.DeviceEvent{}, false
	}
}
