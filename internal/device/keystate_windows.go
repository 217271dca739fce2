//go:build windows

package device

import (
	"github.com/vcaesar/keycode"
	"golang.org/x/sys/windows"

	"github.com/taglme/clickmacro/internal/keystate"
	"github.com/taglme/clickmacro/internal/macro"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// Side-specific virtual keys. The hotkeys require the left-hand modifiers,
// so the generic VK_CONTROL, VK_SHIFT and VK_MENU are never queried.
const (
	vkLShift   = 0xA0
	vkRShift   = 0xA1
	vkLControl = 0xA2
	vkRControl = 0xA3
	vkLMenu    = 0xA4
	vkRMenu    = 0xA5
)

// modifierKeys is applied in order; the left-hand entries come last so they
// win if the key code table aliases a name.
var modifierKeys = []struct {
	name string
	vk   uintptr
}{
	{"rctrl", vkRControl},
	{"rshift", vkRShift},
	{"ralt", vkRMenu},
	{"lctrl", vkLControl},
	{"lshift", vkLShift},
	{"lalt", vkLMenu},
	{"ctrl", vkLControl},
	{"shift", vkLShift},
	{"alt", vkLMenu},
}

// asyncKeyState queries the live keyboard state for modifiers and defers to
// the tracker for everything else.
type asyncKeyState struct {
	tracker *keystate.Tracker
	virtual map[macro.Key]uintptr
}

// NewKeyState returns the modifier state source for this platform.
func NewKeyState(tracker *keystate.Tracker) macro.KeyState {
	return &asyncKeyState{tracker: tracker, virtual: virtualKeys()}
}

func virtualKeys() map[macro.Key]uintptr {
	virtual := make(map[macro.Key]uintptr)
	for _, m := range modifierKeys {
		if code, ok := keycode.Keycode[m.name]; ok {
			virtual[macro.Key(code)] = m.vk
		}
	}
	return virtual
}

// IsHeld reports the real-time state using GetAsyncKeyState where possible.
func (s *asyncKeyState) IsHeld(k macro.Key) bool {
	vk, ok := s.virtual[k]
	if !ok || procGetAsyncKeyState.Find() != nil {
		return s.tracker.IsHeld(k)
	}
	// High-order bit set means key is currently down
	r, _, _ := procGetAsyncKeyState.Call(vk)
	return int16(r) < 0
}
