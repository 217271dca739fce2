package macro

import (
	"context"
	"time"

	"github.com/taglme/clickmacro/internal/fifo"
)

// Config wires an Engine to its collaborators.
type Config struct {
	DebounceWindow time.Duration
	StepPause      time.Duration
	ReleaseTimeout time.Duration

	Keys     KeyState
	Injector Injector
	Cursor   CursorLocator
	Hotkeys  []*HotkeyDefinition

	Clock    Clock
	Logger   Logger
	Notifier Notifier
}

// Engine owns the shared state and runs the dispatcher and replay loops.
type Engine struct {
	recorder   *Recorder
	marker     *SyntheticMarker
	requests   *fifo.Queue[ReplayRequest]
	dispatcher *Dispatcher
	replayer   *ReplayEngine
}

// NewEngine builds an engine. With no Hotkeys configured the fixed
// record and replay hotkeys are used.
func NewEngine(cfg Config) (*Engine, error) {
	definitions := cfg.Hotkeys
	if len(definitions) == 0 {
		var err error
		definitions, err = DefaultHotkeys(NewKeyMapping())
		if err != nil {
			return nil, err
		}
	}
	hotkeys := NewHotkeyDetector(cfg.Keys, definitions...)

	recorder := NewRecorder()
	marker := NewSyntheticMarker()
	requests := fifo.New[ReplayRequest]()

	dispatcher, err := NewDispatcher(DispatcherOptions{
		Recorder:       recorder,
		Marker:         marker,
		Hotkeys:        hotkeys,
		Requests:       requests,
		DebounceWindow: cfg.DebounceWindow,
		Cursor:         cfg.Cursor,
		Clock:          cfg.Clock,
		Logger:         cfg.Logger,
		Notifier:       cfg.Notifier,
	})
	if err != nil {
		requests.Close()
		return nil, err
	}

	replayer, err := NewReplayEngine(ReplayOptions{
		Recorder:       recorder,
		Marker:         marker,
		Injector:       cfg.Injector,
		StepPause:      cfg.StepPause,
		Keys:           cfg.Keys,
		Modifiers:      hotkeys.Modifiers(),
		ReleaseTimeout: cfg.ReleaseTimeout,
		Clock:          cfg.Clock,
		Logger:         cfg.Logger,
		Notifier:       cfg.Notifier,
	})
	if err != nil {
		requests.Close()
		return nil, err
	}

	return &Engine{
		recorder:   recorder,
		marker:     marker,
		requests:   requests,
		dispatcher: dispatcher,
		replayer:   replayer,
	}, nil
}

// Recorder returns the shared recorder state.
func (e *Engine) Recorder() *Recorder {
	return e.recorder
}

// Marker returns the last synthetic action marker.
func (e *Engine) Marker() *SyntheticMarker {
	return e.marker
}

// Run consumes events until ctx is done or either loop fails. It returns
// the first loop error.
func (e *Engine) Run(ctx context.Context, events <-chan DeviceEvent) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() {
		errc <- e.replayer.Run(ctx, e.requests.Out())
	}()
	go func() {
		errc <- e.dispatcher.Run(ctx, events)
	}()

	err := <-errc
	cancel()
	if second := <-errc; err == nil {
		err = second
	}

	e.requests.Close()
	for range e.requests.Out() {
	}
	return err
}
