package macro

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Submitter accepts replay requests. *fifo.Queue[ReplayRequest] implements it.
type Submitter interface {
	Push(req ReplayRequest) error
}

// CursorLocator reports the current cursor position.
type CursorLocator interface {
	Location() Point
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Recorder       *Recorder
	Marker         *SyntheticMarker
	Hotkeys        *HotkeyDetector
	Requests       Submitter
	DebounceWindow time.Duration
	Cursor         CursorLocator
	Clock          Clock
	Logger         Logger
	Notifier       Notifier
}

// Dispatcher is the single consumer of device events.
type Dispatcher struct {
	recorder *Recorder
	echo     *EchoFilter
	hotkeys  *HotkeyDetector
	requests Submitter
	cursor   CursorLocator
	clock    Clock
	log      Logger
	notifier Notifier
	session  string
}

// NewDispatcher validates opts and builds a dispatcher.
func NewDispatcher(opts DispatcherOptions) (*Dispatcher, error) {
	if opts.Recorder == nil {
		return nil, errors.New("recorder must not be nil")
	}
	if opts.Marker == nil {
		return nil, errors.New("synthetic marker must not be nil")
	}
	if opts.Hotkeys == nil {
		return nil, errors.New("hotkey detector must not be nil")
	}
	if opts.Requests == nil {
		return nil, errors.New("replay request sink must not be nil")
	}

	d := &Dispatcher{
		recorder: opts.Recorder,
		echo:     NewEchoFilter(opts.Marker, opts.DebounceWindow),
		hotkeys:  opts.Hotkeys,
		requests: opts.Requests,
		cursor:   opts.Cursor,
		clock:    opts.Clock,
		log:      opts.Logger,
		notifier: opts.Notifier,
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.log == nil {
		d.log = nopLogger{}
	}
	if d.notifier == nil {
		d.notifier = nopNotifier{}
	}
	if d.cursor != nil {
		d.recorder.SetCursor(d.cursor.Location())
	}
	return d, nil
}

// Run consumes events until ctx is done. A closed event channel while ctx
// is still live is a broken invariant and is returned as an error, as is a
// failure to submit a replay request.
func (d *Dispatcher) Run(ctx context.Context, events <-chan DeviceEvent) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrEventStreamClosed
			}
			if err := d.Handle(ev); err != nil {
				return err
			}
		}
	}
}

// Handle processes one device event.
func (d *Dispatcher) Handle(ev DeviceEvent) error {
	now := d.clock()

	if d.echo.IsEcho(ev, now) {
		d.log.LogDebug("Suppressed synthetic echo", "kind", ev.Kind.String())
		return nil
	}

	switch ev.Kind {
	case MouseMove:
		d.recorder.SetCursor(ev.Position)
		d.interruptReplay(ev)

	case MouseButtonDown:
		if ev.Button == ButtonUnknown {
			d.log.LogWarning("Discarding event with unrecognized button")
			return nil
		}
		d.interruptReplay(ev)
		if click, ok := d.recorder.Record(ev.Button, now); ok {
			d.log.LogDebug("Recorded click",
				"button", click.Button.String(),
				"position", click.Position.String(),
				"delay", click.Delay.String())
		}

	case KeyDown:
		d.interruptReplay(ev)
		return d.handleKey(ev.Key, now)

	default:
		d.log.LogWarning("Discarding event of unknown kind", "kind", ev.Kind.String())
	}
	return nil
}

func (d *Dispatcher) interruptReplay(ev DeviceEvent) {
	if d.recorder.RequestInterrupt() {
		d.log.LogDebug("Real input during replay", "kind", ev.Kind.String())
	}
}

func (d *Dispatcher) handleKey(key Key, now time.Time) error {
	switch d.hotkeys.Match(key) {
	case ActionToggleRecord:
		d.toggleRecording(now)
	case ActionReplay:
		return d.requestReplay(now)
	}
	return nil
}

func (d *Dispatcher) toggleRecording(now time.Time) {
	recording, finished := d.recorder.Toggle(now)
	if recording {
		if d.cursor != nil {
			d.recorder.SetCursor(d.cursor.Location())
		}
		d.session = uuid.NewString()
		d.log.LogInfo("start recording", "session", d.session)
		d.notifier.NotifyRecording("Recording started")
		return
	}

	d.log.LogInfo("stop recording", "session", d.session, "events", strconv.Itoa(len(finished)))
	for i, click := range finished {
		d.log.LogInfo("Recorded event",
			"index", strconv.Itoa(i),
			"delay", click.Delay.String(),
			"x", strconv.Itoa(click.Position.X),
			"y", strconv.Itoa(click.Position.Y),
			"button", click.Button.String())
	}
	d.notifier.NotifyRecording("Recording stopped: " + strconv.Itoa(len(finished)) + " click(s)")
}

func (d *Dispatcher) requestReplay(now time.Time) error {
	events, err := d.recorder.Snapshot()
	if errors.Is(err, ErrRecordingInProgress) {
		d.log.LogWarning("recording is not finished")
		d.notifier.NotifyError("Stop the recording before replaying it")
		return nil
	}

	req := NewReplayRequest(events, now)
	if err := d.requests.Push(req); err != nil {
		return errors.Wrap(err, "submit replay request")
	}
	d.log.LogInfo("Replay requested", "request", req.ID, "events", strconv.Itoa(len(req.Events)))
	return nil
}
