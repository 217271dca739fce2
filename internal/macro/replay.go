package macro

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// DefaultStepPause separates the move, press and release of one replayed click.
const DefaultStepPause = 10 * time.Millisecond

// Injector issues synthetic pointer input.
type Injector interface {
	MoveTo(p Point) error
	Press(b Button) error
	Release(b Button) error
}

// ReplayOptions configures a ReplayEngine.
type ReplayOptions struct {
	Recorder  *Recorder
	Marker    *SyntheticMarker
	Injector  Injector
	StepPause time.Duration

	// Keys and Modifiers enable waiting for the hotkey modifiers to be
	// released before the first click. ReleaseTimeout bounds the wait;
	// zero disables it.
	Keys           KeyState
	Modifiers      []Key
	ReleaseTimeout time.Duration

	Clock    Clock
	Logger   Logger
	Notifier Notifier
}

// ReplayResult summarises one processed request.
type ReplayResult struct {
	ID          string
	Reproduced  int
	Interrupted bool
}

// ReplayEngine reproduces replay requests one at a time.
type ReplayEngine struct {
	recorder       *Recorder
	marker         *SyntheticMarker
	injector       Injector
	stepPause      time.Duration
	keys           KeyState
	modifiers      []Key
	releaseTimeout time.Duration
	clock          Clock
	log            Logger
	notifier       Notifier
}

// NewReplayEngine validates opts and builds an engine.
func NewReplayEngine(opts ReplayOptions) (*ReplayEngine, error) {
	if opts.Recorder == nil {
		return nil, errors.New("recorder must not be nil")
	}
	if opts.Marker == nil {
		return nil, errors.New("synthetic marker must not be nil")
	}
	if opts.Injector == nil {
		return nil, errors.New("injector must not be nil")
	}
	if opts.StepPause < 0 {
		return nil, errors.New("step pause must be non-negative")
	}
	if opts.ReleaseTimeout < 0 {
		return nil, errors.New("release timeout must be non-negative")
	}

	e := &ReplayEngine{
		recorder:       opts.Recorder,
		marker:         opts.Marker,
		injector:       opts.Injector,
		stepPause:      opts.StepPause,
		keys:           opts.Keys,
		modifiers:      opts.Modifiers,
		releaseTimeout: opts.ReleaseTimeout,
		clock:          opts.Clock,
		log:            opts.Logger,
		notifier:       opts.Notifier,
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.log == nil {
		e.log = nopLogger{}
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	return e, nil
}

// Run processes requests until ctx is done. Each request finishes or is
// interrupted before the next one is received.
func (e *ReplayEngine) Run(ctx context.Context, requests <-chan ReplayRequest) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req, ok := <-requests:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrRequestStreamClosed
			}
			if _, err := e.Replay(ctx, req); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				e.log.LogError("Replay aborted", err, "request", req.ID)
				e.notifier.NotifyError("Replay aborted: " + err.Error())
			}
		}
	}
}

// Replay reproduces req. Before each click it waits for the click's delay
// and then checks the interrupt flag; once the flag is set no further clicks
// are issued. A click that has started is always completed.
func (e *ReplayEngine) Replay(ctx context.Context, req ReplayRequest) (ReplayResult, error) {
	result := ReplayResult{ID: req.ID}

	e.recorder.BeginReplay()
	defer e.recorder.EndReplay()

	e.log.LogInfo("Replay started", "request", req.ID, "events", strconv.Itoa(len(req.Events)))
	e.notifier.NotifyReplay("Replaying " + strconv.Itoa(len(req.Events)) + " click(s)")

	if err := e.waitForModifierRelease(ctx); err != nil {
		return result, err
	}

	for i, click := range req.Events {
		if err := sleepContext(ctx, click.Delay); err != nil {
			return result, err
		}

		if e.recorder.InterruptRequested() {
			result.Interrupted = true
			e.log.LogWarning("replay interrupted",
				"request", req.ID,
				"reproduced", strconv.Itoa(result.Reproduced),
				"remaining", strconv.Itoa(len(req.Events)-i))
			e.notifier.NotifyReplay("Replay interrupted")
			return result, nil
		}

		if err := e.reproduce(click); err != nil {
			return result, errors.Wrapf(err, "reproduce event %d", i)
		}
		result.Reproduced++
	}

	e.log.LogInfo("Replay finished", "request", req.ID, "reproduced", strconv.Itoa(result.Reproduced))
	return result, nil
}

// reproduce issues one click. The marker is updated before the first
// primitive so the echo window covers the injection latency.
func (e *ReplayEngine) reproduce(click ClickEvent) error {
	e.marker.Store(click.Position, e.clock())

	if err := e.injector.MoveTo(click.Position); err != nil {
		return errors.Wrap(err, "move cursor")
	}
	time.Sleep(e.stepPause)
	if err := e.injector.Press(click.Button); err != nil {
		return errors.Wrap(err, "press button")
	}
	time.Sleep(e.stepPause)
	if err := e.injector.Release(click.Button); err != nil {
		return errors.Wrap(err, "release button")
	}
	return nil
}

func (e *ReplayEngine) waitForModifierRelease(ctx context.Context) error {
	if e.keys == nil || len(e.modifiers) == 0 || e.releaseTimeout <= 0 {
		return nil
	}

	poll := e.stepPause
	if poll <= 0 {
		poll = DefaultStepPause
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	timeout := time.NewTimer(e.releaseTimeout)
	defer timeout.Stop()

	for e.anyModifierHeld() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout.C:
			e.log.LogWarning("Hotkey modifiers still held, replaying anyway")
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func (e *ReplayEngine) anyModifierHeld() bool {
	for _, m := range e.modifiers {
		if e.keys.IsHeld(m) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
