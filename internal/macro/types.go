package macro

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vcaesar/keycode"
)

// Point is a screen position in pixels.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Button identifies a mouse button.
type Button uint8

// Mouse buttons. ButtonUnknown marks an identifier the listener could not map.
const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ButtonFromID maps a hook mouse button identifier to a Button.
func ButtonFromID(id uint16) Button {
	switch id {
	case keycode.MouseMap["left"]:
		return ButtonLeft
	case keycode.MouseMap["right"]:
		return ButtonRight
	case keycode.MouseMap["center"]:
		return ButtonMiddle
	default:
		return ButtonUnknown
	}
}

// Key is a hook key code.
type Key uint16

// EventKind tags the variant carried by a DeviceEvent.
type EventKind uint8

// Device event kinds.
const (
	MouseMove EventKind = iota + 1
	MouseButtonDown
	KeyDown
)

func (k EventKind) String() string {
	switch k {
	case MouseMove:
		return "mouse_move"
	case MouseButtonDown:
		return "mouse_down"
	case KeyDown:
		return "key_down"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// DeviceEvent is a raw input notification translated by the device listener.
// Only the field matching Kind is meaningful.
type DeviceEvent struct {
	Kind     EventKind
	Position Point
	Button   Button
	Key      Key
}

// MoveEvent builds a MouseMove event.
func MoveEvent(p Point) DeviceEvent {
	return DeviceEvent{Kind: MouseMove, Position: p}
}

// ButtonEvent builds a MouseButtonDown event.
func ButtonEvent(b Button) DeviceEvent {
	return DeviceEvent{Kind: MouseButtonDown, Button: b}
}

// KeyEvent builds a KeyDown event.
func KeyEvent(k Key) DeviceEvent {
	return DeviceEvent{Kind: KeyDown, Key: k}
}

// ClickEvent is one recorded click. Delay is the time elapsed since the
// previous click of the same recording; the first click has zero delay.
type ClickEvent struct {
	Delay    time.Duration
	Position Point
	Button   Button
}

// ReplayRequest is an immutable snapshot of a macro queued for replay.
type ReplayRequest struct {
	ID        string
	Events    []ClickEvent
	Requested time.Time
}

// NewReplayRequest copies events into a new request.
func NewReplayRequest(events []ClickEvent, at time.Time) ReplayRequest {
	snapshot := make([]ClickEvent, len(events))
	copy(snapshot, events)
	return ReplayRequest{
		ID:        uuid.NewString(),
		Events:    snapshot,
		Requested: at,
	}
}

// Clock returns the current time.
type Clock func() time.Time
