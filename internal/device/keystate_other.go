//go:build !windows

package device

import (
	"github.com/taglme/clickmacro/internal/keystate"
	"github.com/taglme/clickmacro/internal/macro"
)

// NewKeyState returns the modifier state source for this platform. Without
// an asynchronous query API the hook-fed tracker is authoritative.
func NewKeyState(tracker *keystate.Tracker) macro.KeyState {
	return tracker
}
