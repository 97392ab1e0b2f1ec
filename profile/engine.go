package profile

import (
	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
	"github.com/clktmr/rukaibox/socd"
)

// Engine maps physical buttons of one profile to reports. It owns the SOCD
// history of that profile, so a new Engine starts with all axes neutral.
type Engine struct {
	logic   config.BaseLogic
	socd    config.SocdType
	buttons config.ButtonMapping
	history socd.State
}

func NewEngine(p *config.Profile) *Engine {
	return &Engine{
		logic:   p.Logic,
		socd:    p.Socd,
		buttons: p.Buttons,
	}
}

func (e *Engine) Logic() config.BaseLogic { return e.logic }

// Resolve looks up the logical buttons of b and resolves opposing directions.
func (e *Engine) Resolve(b input.Buttons) (input.Logical, Directions) {
	l := input.Map(&e.buttons, b)
	d := Directions{
		ModX:     l.Held(config.ModX),
		ModY:     l.Held(config.ModY),
		LDigital: l.Held(config.LDigital),
		RDigital: l.Held(config.RDigital),
		A:        l.Held(config.ButtonA),
		B:        l.Held(config.ButtonB),
		Z:        l.Held(config.ButtonZ),
	}
	h := &e.history
	d.Left, d.Right = h[socd.StickX].Resolve(e.socd, l.Held(config.StickLeft), l.Held(config.StickRight))
	d.Up, d.Down = h[socd.StickY].Resolve(e.socd, l.Held(config.StickUp), l.Held(config.StickDown))
	d.CLeft, d.CRight = h[socd.CstickX].Resolve(e.socd, l.Held(config.CstickLeft), l.Held(config.CstickRight))
	d.CUp, d.CDown = h[socd.CstickY].Resolve(e.socd, l.Held(config.CstickUp), l.Held(config.CstickDown))
	return l, d
}

// Map produces the report for one sample.
func (e *Engine) Map(b input.Buttons) joybus.Report {
	l, d := e.Resolve(b)
	p := DeriveDpad(e.logic, l, d)
	s := p.Exclude(Curves(e.logic, d))
	return BuildReport(l, p, s)
}
