package macro

import (
	"sync"
	"time"
)

// SyntheticMarker remembers the most recent action injected by the replay
// engine. The replay engine is the only writer; the dispatcher reads it to
// recognise echoes of its own input.
type SyntheticMarker struct {
	position  Point
	timestamp time.Time
	mutex     sync.RWMutex
}

// NewSyntheticMarker creates an empty marker.
func NewSyntheticMarker() *SyntheticMarker {
	return &SyntheticMarker{}
}

// Store saves the target position of an injected action and when it was issued.
func (sm *SyntheticMarker) Store(p Point, at time.Time) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.position = p
	sm.timestamp = at
}

// Last returns the last synthetic action. ok is false until the first Store.
func (sm *SyntheticMarker) Last() (p Point, at time.Time, ok bool) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	if sm.timestamp.IsZero() {
		return Point{}, time.Time{}, false
	}
	return sm.position, sm.timestamp, true
}

// Age returns how long ago the last synthetic action was issued, or a
// negative duration if none has been.
func (sm *SyntheticMarker) Age(now time.Time) time.Duration {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	if sm.timestamp.IsZero() {
		return -1
	}
	return now.Sub(sm.timestamp)
}
