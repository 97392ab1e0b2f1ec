// Package profile turns sampled buttons into controller reports according to
// the active configuration profile.
package profile

import (
	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/debug"
	"github.com/clktmr/rukaibox/joybus"
)

// Directions is the modifier and direction state the stick curves are derived
// from. Opposing directions must already be SOCD resolved.
type Directions struct {
	ModX, ModY bool

	Left, Right, Up, Down     bool
	CLeft, CRight, CUp, CDown bool

	LDigital, RDigital bool
	A, B, Z            bool
}

func (d *Directions) horizontal() bool  { return d.Left || d.Right }
func (d *Directions) vertical() bool    { return d.Up || d.Down }
func (d *Directions) diagonal() bool    { return d.horizontal() && d.vertical() }
func (d *Directions) cHorizontal() bool { return d.CLeft || d.CRight }

func sign(neg, pos bool) int {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}

// Sticks holds the axis bytes of both sticks.
type Sticks struct {
	X, Y   uint8
	CX, CY uint8
}

// Centered is the resting position of both sticks.
var Centered = Sticks{joybus.AxisCenter, joybus.AxisCenter, joybus.AxisCenter, joybus.AxisCenter}

func axis(offset int) uint8 {
	v := joybus.AxisCenter + offset
	debug.Assert(v >= 0 && v <= 255, "axis out of range")
	return uint8(v)
}

// magnitude is an unsigned (x, y) deflection, scaled by the direction signs.
type magnitude struct{ x, y int }

// Curves computes the stick positions for logic. It has no side effects.
func Curves(logic config.BaseLogic, d Directions) Sticks {
	var m magnitude
	var cFull int
	switch logic {
	case config.Rivals2:
		m, cFull = rivals2(&d), 127
	default:
		m, cFull = projectPlus(&d), 100
	}

	xDir, yDir := sign(d.Left, d.Right), sign(d.Down, d.Up)
	cxDir, cyDir := sign(d.CLeft, d.CRight), sign(d.CDown, d.CUp)

	s := Sticks{
		X: axis(xDir * m.x),
		Y: axis(yDir * m.y),
	}

	// angled smash attacks
	if d.ModX && d.cHorizontal() {
		s.CX = axis(cxDir * 65)
		s.CY = axis(yDir * 23)
	} else {
		s.CX = axis(cxDir * cFull)
		s.CY = axis(cyDir * cFull)
	}
	return s
}

func projectPlus(d *Directions) magnitude {
	shield := d.RDigital
	switch {
	case d.ModX:
		switch {
		case d.diagonal():
			switch {
			case d.CRight:
				return magnitude{72, 61}
			case d.CLeft:
				return magnitude{84, 50}
			case d.CDown:
				return magnitude{82, 36}
			case d.CUp:
				return magnitude{77, 55}
			case shield:
				return magnitude{82, 35}
			case d.B:
				return magnitude{85, 31}
			}
			return magnitude{70, 34}
		case d.vertical():
			return magnitude{0, 60}
		case d.horizontal():
			return magnitude{70, 0}
		}
		return magnitude{}
	case d.ModY:
		switch {
		case d.diagonal():
			switch {
			case d.CRight:
				return magnitude{62, 72}
			case d.CLeft:
				return magnitude{40, 84}
			case d.CDown:
				return magnitude{34, 82}
			case d.CUp:
				return magnitude{55, 77}
			case shield:
				return magnitude{51, 82}
			case d.B:
				return magnitude{28, 85}
			}
			return magnitude{28, 58}
		case d.vertical():
			return magnitude{0, 70}
		case d.horizontal():
			return magnitude{35, 0}
		}
		return magnitude{}
	case d.diagonal() && d.Up:
		return magnitude{83, 93}
	}
	return magnitude{100, 100}
}

func rivals2(d *Directions) magnitude {
	shield := d.LDigital || d.RDigital
	switch {
	case d.ModX:
		switch {
		case d.diagonal() && !shield:
			switch {
			case d.A: // angled tilts
				return magnitude{69, 53}
			case d.Z: // shortest up special
				return magnitude{53, 42}
			case d.B: // full up special
				return magnitude{123, 51}
			}
			return magnitude{68, 42}
		case d.diagonal():
			// max length wavedash
			return magnitude{76, 42}
		case d.vertical():
			return magnitude{0, 53}
		case d.horizontal():
			return magnitude{76, 0}
		}
		return magnitude{}
	case d.ModY:
		switch {
		case d.diagonal() && !shield:
			switch {
			case d.Z:
				return magnitude{42, 53}
			case d.B:
				return magnitude{51, 123}
			}
			return magnitude{42, 68}
		case d.vertical():
			return magnitude{0, 90}
		case d.horizontal():
			return magnitude{53, 0}
		}
		return magnitude{}
	case d.diagonal() && shield:
		// no spot dodge on diagonals while shielding
		return magnitude{92, 92}
	case d.diagonal():
		return magnitude{92, 96}
	}
	return magnitude{127, 127}
}
