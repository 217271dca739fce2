package device

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"

	"github.com/taglme/clickmacro/internal/macro"
)

// Injector synthesizes pointer input through robotgo.
type Injector struct{}

// NewInjector creates a robotgo backed injector.
func NewInjector() *Injector {
	return &Injector{}
}

// MoveTo moves the cursor to an absolute screen position.
func (i *Injector) MoveTo(p macro.Point) error {
	robotgo.Move(p.X, p.Y)
	return nil
}

// Press holds a mouse button down.
func (i *Injector) Press(b macro.Button) error {
	name, err := buttonName(b)
	if err != nil {
		return err
	}
	return robotgo.Toggle(name)
}

// Release lets go of a mouse button.
func (i *Injector) Release(b macro.Button) error {
	name, err := buttonName(b)
	if err != nil {
		return err
	}
	return robotgo.Toggle(name, "up")
}

// Location returns the current cursor position.
func (i *Injector) Location() macro.Point {
	x, y := robotgo.Location()
	return macro.Point{X: x, Y: y}
}

func buttonName(b macro.Button) (string, error) {
	switch b {
	case macro.ButtonLeft:
		return "left", nil
	case macro.ButtonRight:
		return "right", nil
	case macro.ButtonMiddle:
		return "center", nil
	default:
		return "", errors.Errorf("cannot inject %s button", b)
	}
}
