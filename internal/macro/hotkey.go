package macro

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vcaesar/keycode"
)

// Action is what a recognised hotkey asks the dispatcher to do.
type Action uint8

// Hotkey actions.
const (
	ActionNone Action = iota
	ActionToggleRecord
	ActionReplay
)

func (a Action) String() string {
	switch a {
	case ActionToggleRecord:
		return "toggle-record"
	case ActionReplay:
		return "replay"
	default:
		return "none"
	}
}

// Hotkey describes a key combination by key names.
type Hotkey struct {
	Key       string
	Modifiers []string
	Name      string
}

// The fixed hotkeys. Modifiers are the left-hand keys.
var (
	ToggleRecordHotkey = Hotkey{Key: "c", Modifiers: []string{"ctrl", "shift", "alt"}, Name: "Ctrl+Shift+Alt+C"}
	ReplayHotkey       = Hotkey{Key: "x", Modifiers: []string{"ctrl", "shift", "alt"}, Name: "Ctrl+Shift+Alt+X"}
)

// KeyState answers whether a key is held down right now.
type KeyState interface {
	IsHeld(k Key) bool
}

// KeyMapping resolves key names to hook key codes.
type KeyMapping struct {
	keyMap      keycode.UMap
	modifierMap map[string]Key
}

// NewKeyMapping creates a mapping backed by the hook's key code table.
func NewKeyMapping() *KeyMapping {
	km := &KeyMapping{
		keyMap:      keycode.Keycode,
		modifierMap: make(map[string]Key),
	}
	for _, name := range []string{"ctrl", "shift", "alt"} {
		if code, ok := km.keyMap[name]; ok {
			km.modifierMap[name] = Key(code)
		}
	}
	return km
}

// KeyCode returns the key code for a key name.
func (km *KeyMapping) KeyCode(name string) (Key, bool) {
	code, ok := km.keyMap[strings.ToLower(name)]
	return Key(code), ok
}

// ModifierCode returns the key code for a modifier name.
func (km *KeyMapping) ModifierCode(name string) (Key, bool) {
	code, ok := km.modifierMap[strings.ToLower(name)]
	return code, ok
}

// HotkeyDefinition is a Hotkey resolved to key codes and bound to an action.
type HotkeyDefinition struct {
	Name      string
	Action    Action
	Trigger   Key
	Modifiers []Key
}

// BuildHotkeyDefinition resolves hotkey and binds it to action.
func (km *KeyMapping) BuildHotkeyDefinition(action Action, hotkey Hotkey) (*HotkeyDefinition, error) {
	trigger, ok := km.KeyCode(hotkey.Key)
	if !ok {
		return nil, errors.Errorf("unsupported key: %s", hotkey.Key)
	}

	modifiers := make([]Key, 0, len(hotkey.Modifiers))
	for _, m := range hotkey.Modifiers {
		code, ok := km.ModifierCode(m)
		if !ok {
			return nil, errors.Errorf("unsupported modifier: %s", m)
		}
		modifiers = append(modifiers, code)
	}

	name := hotkey.Name
	if name == "" {
		name = strings.Join(append(append([]string{}, hotkey.Modifiers...), hotkey.Key), "+")
	}

	return &HotkeyDefinition{
		Name:      name,
		Action:    action,
		Trigger:   trigger,
		Modifiers: modifiers,
	}, nil
}

// DefaultHotkeys resolves the record and replay hotkeys.
func DefaultHotkeys(km *KeyMapping) ([]*HotkeyDefinition, error) {
	toggle, err := km.BuildHotkeyDefinition(ActionToggleRecord, ToggleRecordHotkey)
	if err != nil {
		return nil, errors.Wrap(err, "toggle-record hotkey")
	}
	replay, err := km.BuildHotkeyDefinition(ActionReplay, ReplayHotkey)
	if err != nil {
		return nil, errors.Wrap(err, "replay hotkey")
	}
	return []*HotkeyDefinition{toggle, replay}, nil
}

// HotkeyDetector matches key presses against hotkey definitions. Modifier
// state is queried from keys at match time, never inferred from past events.
type HotkeyDetector struct {
	definitions []*HotkeyDefinition
	keys        KeyState
}

// NewHotkeyDetector creates a detector over the given definitions.
func NewHotkeyDetector(keys KeyState, definitions ...*HotkeyDefinition) *HotkeyDetector {
	return &HotkeyDetector{definitions: definitions, keys: keys}
}

// Match returns the action of the hotkey whose trigger is key and whose
// modifiers are all held, or ActionNone.
func (d *HotkeyDetector) Match(key Key) Action {
	for _, def := range d.definitions {
		if def.Trigger != key {
			continue
		}
		if d.allHeld(def.Modifiers) {
			return def.Action
		}
	}
	return ActionNone
}

// Definition returns the definition bound to action, or nil.
func (d *HotkeyDetector) Definition(action Action) *HotkeyDefinition {
	for _, def := range d.definitions {
		if def.Action == action {
			return def
		}
	}
	return nil
}

// Modifiers returns every modifier used by any definition, without duplicates.
func (d *HotkeyDetector) Modifiers() []Key {
	seen := make(map[Key]bool)
	var out []Key
	for _, def := range d.definitions {
		for _, m := range def.Modifiers {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func (d *HotkeyDetector) allHeld(modifiers []Key) bool {
	if d.keys == nil {
		return len(modifiers) == 0
	}
	for _, m := range modifiers {
		if !d.keys.IsHeld(m) {
			return false
		}
	}
	return true
}
