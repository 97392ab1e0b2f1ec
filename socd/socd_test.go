package socd

import (
	"testing"

	"github.com/clktmr/rukaibox/config"
)

type step struct {
	first, second      bool
	wantFirst, wantSec bool
}

func run(t *testing.T, typ config.SocdType, steps []step) {
	t.Helper()
	var a Axis
	for i, s := range steps {
		f, sec := a.Resolve(typ, s.first, s.second)
		if f != s.wantFirst || sec != s.wantSec {
			t.Fatalf("step %d: expected (%v, %v), got (%v, %v)", i, s.wantFirst, s.wantSec, f, sec)
		}
	}
}

func TestSecondInputPriority(t *testing.T) {
	tests := map[string][]step{
		"tieBreak": {
			{true, true, true, false},
		},
		"secondWins": {
			{true, false, true, false},
			{true, true, false, true},
		},
		"firstWins": {
			{false, true, false, true},
			{true, true, true, false},
		},
		"reassert": {
			{true, true, true, false},
			{true, false, true, false},
			{true, true, false, true},
		},
		"conflictKeepsLatch": {
			{true, false, true, false},
			{true, true, false, true},
			{true, true, false, true},
			{false, true, false, true},
			{true, true, true, false},
		},
		"neutralResetsLatch": {
			{true, false, true, false},
			{false, false, false, false},
			{true, true, true, false},
		},
		"passThrough": {
			{false, false, false, false},
			{false, true, false, true},
			{true, false, true, false},
		},
	}
	for name, steps := range tests {
		t.Run(name, func(t *testing.T) {
			run(t, config.SecondInputPriority, steps)
		})
	}
}

func TestNeutral(t *testing.T) {
	run(t, config.Neutral, []step{
		{true, false, true, false},
		{true, true, false, false},
		{false, true, false, true},
		{true, true, false, false},
		{false, false, false, false},
	})
}

func TestAxesIndependent(t *testing.T) {
	var s State
	s[StickX].Resolve(config.SecondInputPriority, true, false)
	f, sec := s[StickY].Resolve(config.SecondInputPriority, true, true)
	if !f || sec {
		t.Fatalf("expected (true, false), got (%v, %v)", f, sec)
	}
	f, sec = s[StickX].Resolve(config.SecondInputPriority, true, true)
	if f || !sec {
		t.Fatalf("expected (false, true), got (%v, %v)", f, sec)
	}
}
