package macro

import (
	"sync"
	"time"
)

// Recorder is the shared recorder state. Every method is a single short
// critical section; no caller holds the lock across a wait.
type Recorder struct {
	mu            sync.Mutex
	events        []ClickEvent
	cursor        Point
	recording     bool
	lastEventTime time.Time
	interrupt     bool
	replaying     bool
}

// NewRecorder creates an idle recorder with an empty macro.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetCursor stores the last known cursor position.
func (r *Recorder) SetCursor(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = p
}

// Cursor returns the last known cursor position.
func (r *Recorder) Cursor() Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// IsRecording reports whether a recording session is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Toggle starts a recording when idle and stops it when recording.
// Starting clears the previous macro. Stopping returns a copy of the
// finished macro.
func (r *Recorder) Toggle(now time.Time) (recording bool, finished []ClickEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.recording = false
		return false, r.copyEvents()
	}

	r.events = r.events[:0]
	r.lastEventTime = now
	r.recording = true
	return true, nil
}

// Record appends a click at the current cursor position. It returns false
// and records nothing when no session is active.
func (r *Recorder) Record(b Button, now time.Time) (ClickEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return ClickEvent{}, false
	}

	var delay time.Duration
	if len(r.events) > 0 {
		delay = now.Sub(r.lastEventTime)
		if delay < 0 {
			delay = 0
		}
	}

	click := ClickEvent{
		Delay:    delay,
		Position: r.cursor,
		Button:   b,
	}
	r.events = append(r.events, click)
	r.lastEventTime = now
	return click, true
}

// Events returns a copy of the current macro.
func (r *Recorder) Events() []ClickEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyEvents()
}

// Snapshot copies the finished macro for replay. It clears a stale
// interrupt only when no replay is in flight; an interrupt raised against a
// running replay stays set. It fails with ErrRecordingInProgress while
// recording, leaving the state untouched.
func (r *Recorder) Snapshot() ([]ClickEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return nil, ErrRecordingInProgress
	}
	if !r.replaying {
		r.interrupt = false
	}
	return r.copyEvents(), nil
}

// RequestInterrupt flags the in-flight replay for abort. It does nothing
// and returns false when no replay is running.
func (r *Recorder) RequestInterrupt() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.replaying {
		return false
	}
	r.interrupt = true
	return true
}

// InterruptRequested reports whether real input has been seen since the
// current replay began.
func (r *Recorder) InterruptRequested() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interrupt
}

// BeginReplay marks a replay as in flight with a clear interrupt flag.
func (r *Recorder) BeginReplay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interrupt = false
	r.replaying = true
}

// EndReplay marks the in-flight replay as done.
func (r *Recorder) EndReplay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaying = false
}

// Replaying reports whether a replay is in flight.
func (r *Recorder) Replaying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replaying
}

func (r *Recorder) copyEvents() []ClickEvent {
	out := make([]ClickEvent, len(r.events))
	copy(out, r.events)
	return out
}
