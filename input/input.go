// Package input translates the state of the device's physical buttons into
// logical controller functions.
package input

import (
	"strings"

	"github.com/clktmr/rukaibox/config"
)

// Buttons is the set of physical buttons pressed during one sample.
type Buttons uint32

// Of returns the set containing the given buttons. None is ignored.
func Of(buttons ...config.PhysicalButton) (b Buttons) {
	for _, v := range buttons {
		b = b.With(v)
	}
	return
}

func (b Buttons) With(p config.PhysicalButton) Buttons {
	if p >= config.None {
		return b
	}
	return b | 1<<p
}

// Pressed reports whether p is down. None is never pressed.
func (b Buttons) Pressed(p config.PhysicalButton) bool {
	if p >= config.None {
		return false
	}
	return b&(1<<p) != 0
}

// All reports whether every button of combo is pressed. It returns false for
// an empty combination.
func (b Buttons) All(combo []config.PhysicalButton) bool {
	if len(combo) == 0 {
		return false
	}
	for _, p := range combo {
		if !b.Pressed(p) {
			return false
		}
	}
	return true
}

func (b Buttons) String() string {
	var sb strings.Builder
	for i := 0; i < config.NumPhysicalButtons; i++ {
		p := config.PhysicalButton(i)
		if b.Pressed(p) {
			if sb.Len() != 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(p.String())
		}
	}
	return sb.String()
}

// Sampler reads all physical buttons once per poll cycle.
type Sampler interface {
	Sample() Buttons
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func() Buttons

func (f SamplerFunc) Sample() Buttons { return f() }

// State keeps the last two samples to detect transitions.
type State struct {
	current, last Buttons
}

// Update shifts in a new sample.
func (s *State) Update(b Buttons) {
	s.last = s.current
	s.current = b
}

func (s *State) Down() Buttons {
	return s.current
}

func (s *State) Changed() Buttons {
	return s.current ^ s.last
}

func (s *State) Pressed() Buttons {
	return s.Changed() & s.current
}

func (s *State) Released() Buttons {
	return s.Changed() & s.last
}
