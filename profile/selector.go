package profile

import (
	"slices"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/debug"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
)

// Selector switches between the profiles of a configuration. The first
// profile is active initially.
type Selector struct {
	profiles []config.Profile
	active   int
	engine   *Engine
}

// NewSelector returns a selector for cfg, which must hold at least one
// profile. The profiles are copied, later changes to cfg have no effect.
func NewSelector(cfg *config.Config) *Selector {
	debug.Assert(len(cfg.Profiles) > 0, "selector without profiles")
	s := &Selector{profiles: slices.Clone(cfg.Profiles)}
	for i := range s.profiles {
		s.profiles[i].Activation = slices.Clone(s.profiles[i].Activation)
	}
	s.activate(0)
	return s
}

func (s *Selector) activate(i int) {
	s.active = i
	s.engine = NewEngine(&s.profiles[i])
}

// Update activates the first profile in declared order whose activation
// combination is fully held. Profiles without a combination are never
// activated this way. The engine is rebuilt on every match, even if that
// profile was already active. It reports whether a profile matched.
func (s *Selector) Update(b input.Buttons) bool {
	for i := range s.profiles {
		if b.All(s.profiles[i].Activation) {
			s.activate(i)
			return true
		}
	}
	return false
}

// Active returns the index of the active profile.
func (s *Selector) Active() int {
	return s.active
}

func (s *Selector) Engine() *Engine {
	return s.engine
}

// Map produces the report for b using the active profile.
func (s *Selector) Map(b input.Buttons) joybus.Report {
	return s.engine.Map(b)
}
