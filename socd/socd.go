// Package socd resolves simultaneous opposing cardinal directions, i.e. both
// sides of an axis being held at once.
//
// See https://www.hitboxarcade.com/blogs/support/what-is-socd
package socd

import "github.com/clktmr/rukaibox/config"

// Axis is the resolution history of one axis. The first input is the
// left/up side as passed to Resolve, the second the right/down side.
type Axis struct {
	prevFirst  bool
	prevSecond bool
}

// Resolve returns which of the two opposing inputs take effect.
//
// With SecondInputPriority the most recently pressed side wins. The history
// only advances while the axis is not in conflict, so it records which side
// was last held alone. A simultaneous first press resolves to the first
// input. With Neutral a conflict cancels both sides.
func (a *Axis) Resolve(t config.SocdType, first, second bool) (bool, bool) {
	switch t {
	case config.SecondInputPriority:
		if first && second {
			if a.prevFirst {
				return false, true
			}
			return true, false
		}
		a.prevFirst, a.prevSecond = first, second
		return first, second
	case config.Neutral:
		if first && second {
			return false, false
		}
	}
	return first, second
}

// Axes indexes the history of each resolved axis.
const (
	StickX = iota
	StickY
	CstickX
	CstickY

	NumAxes
)

// State holds the history of all axes of one mapping engine.
type State [NumAxes]Axis
