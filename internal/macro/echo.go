package macro

import "time"

// DefaultDebounceWindow is how long after a synthetic action incoming events
// are treated as its echo.
const DefaultDebounceWindow = 100 * time.Millisecond

// EchoFilter decides whether a device event is the echo of the replay
// engine's own synthetic input.
//
// Moves must match the synthetic position and fall inside the window.
// Button and key events carry no comparable position, so they are matched by
// time alone. A genuine action within the window of a synthetic one is
// therefore dropped, and a synthetic action whose echo arrives after the
// window counts as real input.
type EchoFilter struct {
	window time.Duration
	marker *SyntheticMarker
}

// NewEchoFilter creates a filter reading from marker. A non-positive window
// selects DefaultDebounceWindow.
func NewEchoFilter(marker *SyntheticMarker, window time.Duration) *EchoFilter {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &EchoFilter{window: window, marker: marker}
}

// Window returns the debounce window in use.
func (f *EchoFilter) Window() time.Duration {
	return f.window
}

// IsEcho reports whether ev, observed at now, should be suppressed.
func (f *EchoFilter) IsEcho(ev DeviceEvent, now time.Time) bool {
	pos, at, ok := f.marker.Last()
	if !ok {
		return false
	}
	if now.Sub(at) >= f.window {
		return false
	}

	switch ev.Kind {
	case MouseMove:
		return ev.Position == pos
	case MouseButtonDown, KeyDown:
		return true
	default:
		return false
	}
}
