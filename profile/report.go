package profile

import (
	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
)

// TriggerPressed is the analog trigger value reported for a held analog
// shoulder button. There is no pressure sensing.
const TriggerPressed = 49

// Dpad holds the derived directional pad state.
type Dpad struct {
	Up, Down, Left, Right bool
}

// DeriveDpad returns the dpad state. Holding both modifiers turns the c-stick
// into a dpad. Native dpad buttons are honored as far as the base logic
// defines them.
func DeriveDpad(logic config.BaseLogic, l input.Logical, d Directions) Dpad {
	both := d.ModX && d.ModY
	p := Dpad{
		Up:    both && d.CUp,
		Down:  both && d.CDown,
		Left:  both && d.CLeft,
		Right: both && d.CRight,
	}
	native := func(b config.LogicalButton) bool {
		return logic.Honors(b) && l.Held(b)
	}
	p.Up = p.Up || native(config.DpadUp)
	p.Down = p.Down || native(config.DpadDown)
	p.Left = p.Left || native(config.DpadLeft)
	p.Right = p.Right || native(config.DpadRight)
	return p
}

// Exclude centers each c-stick axis the dpad is active on.
func (p Dpad) Exclude(s Sticks) Sticks {
	if p.Left || p.Right {
		s.CX = joybus.AxisCenter
	}
	if p.Up || p.Down {
		s.CY = joybus.AxisCenter
	}
	return s
}

// BuildReport assembles the poll report. The c-stick in s must already be
// reconciled with the dpad.
func BuildReport(l input.Logical, p Dpad, s Sticks) joybus.Report {
	r := joybus.Report{
		StickX:  s.X,
		StickY:  s.Y,
		CstickX: s.CX,
		CstickY: s.CY,
	}

	set := func(on bool, mask joybus.ButtonMask) {
		if on {
			r.Buttons |= mask
		}
	}
	set(l.Held(config.ButtonStart), joybus.ButtonStart)
	set(l.Held(config.ButtonA), joybus.ButtonA)
	set(l.Held(config.ButtonB), joybus.ButtonB)
	set(l.Held(config.ButtonX), joybus.ButtonX)
	set(l.Held(config.ButtonY), joybus.ButtonY)
	set(l.Held(config.ButtonZ), joybus.ButtonZ)
	set(l.Held(config.LDigital), joybus.ButtonL)
	set(l.Held(config.RDigital), joybus.ButtonR)
	set(p.Up, joybus.ButtonDUp)
	set(p.Down, joybus.ButtonDDown)
	set(p.Left, joybus.ButtonDLeft)
	set(p.Right, joybus.ButtonDRight)

	if l.Held(config.LAnalog) {
		r.TriggerL = TriggerPressed
	}
	if l.Held(config.RAnalog) {
		r.TriggerR = TriggerPressed
	}
	return r
}
