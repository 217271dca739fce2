// Package keystate keeps a live set of held keys fed from hook callbacks.
package keystate

import (
	"sync"

	"github.com/taglme/clickmacro/internal/macro"
)

// Tracker records key presses and releases as the hook reports them and
// answers whether a key is held at any moment.
type Tracker struct {
	mu   sync.RWMutex
	held map[macro.Key]bool
}

// NewTracker creates a tracker with no keys held.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[macro.Key]bool)}
}

// Press marks k as held.
func (t *Tracker) Press(k macro.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held[k] = true
}

// Release marks k as released.
func (t *Tracker) Release(k macro.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, k)
}

// IsHeld reports whether k is currently held.
func (t *Tracker) IsHeld(k macro.Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.held[k]
}

// Held returns the number of keys currently held.
func (t *Tracker) Held() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.held)
}

// Reset forgets every held key. Used when the hook restarts and release
// notifications may have been lost.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = make(map[macro.Key]bool)
}
