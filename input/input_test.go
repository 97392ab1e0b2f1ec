package input

import (
	"testing"

	"github.com/clktmr/rukaibox/config"
)

func TestButtons(t *testing.T) {
	b := Of(config.Start, config.LeftPinky, config.None)
	if !b.Pressed(config.Start) || !b.Pressed(config.LeftPinky) {
		t.Fatal("expected Start and LeftPinky pressed")
	}
	if b.Pressed(config.None) || Buttons(^uint32(0)).Pressed(config.None) {
		t.Fatal("None must never be pressed")
	}
	if s := b.String(); s != "Start + LeftPinky" {
		t.Fatalf("expected %q, got %q", "Start + LeftPinky", s)
	}

	tests := map[string]struct {
		combo []config.PhysicalButton
		want  bool
	}{
		"empty":    {nil, false},
		"single":   {[]config.PhysicalButton{config.Start}, true},
		"both":     {[]config.PhysicalButton{config.Start, config.LeftPinky}, true},
		"partial":  {[]config.PhysicalButton{config.Start, config.LeftRing}, false},
		"withNone": {[]config.PhysicalButton{config.Start, config.None}, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := b.All(tc.combo); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestState(t *testing.T) {
	var s State
	s.Update(Of(config.Start))
	s.Update(Of(config.Start, config.RightIndex))
	if s.Pressed() != Of(config.RightIndex) {
		t.Fatalf("expected %v pressed, got %v", Of(config.RightIndex), s.Pressed())
	}
	s.Update(Of(config.RightIndex))
	if s.Released() != Of(config.Start) {
		t.Fatalf("expected %v released, got %v", Of(config.Start), s.Released())
	}
	if s.Down() != Of(config.RightIndex) || s.Changed() != Of(config.Start) {
		t.Fatalf("unexpected state down=%v changed=%v", s.Down(), s.Changed())
	}
}

func TestMap(t *testing.T) {
	m := config.DefaultButtons()

	tests := map[string]struct {
		pressed Buttons
		want    Logical
	}{
		"nothing":  {0, 0},
		"a":        {Of(config.RightThumbMiddle), 1 << config.ButtonA},
		"stickUp":  {Of(config.RightPinky), 1 << config.StickUp},
		"stickUp2": {Of(config.LeftMiddle2), 1 << config.StickUp},
		"stickUpBoth": {
			Of(config.RightPinky, config.LeftMiddle2),
			1 << config.StickUp,
		},
		"modifiers": {
			Of(config.LeftThumbLeft, config.LeftThumbRight),
			1<<config.ModX | 1<<config.ModY,
		},
		"mixed":    {Of(config.RightThumbMiddle, config.LeftMiddle2), 1<<config.ButtonA | 1<<config.StickUp},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Map(&m, tc.pressed); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	// Unmapped buttons read as released even with every switch down.
	empty := config.NewButtonMapping()
	if got := Map(&empty, Buttons(^uint32(0))); got != 0 {
		t.Fatalf("expected nothing held, got %v", got)
	}
	if Map(&m, Of(config.LeftMiddle2)).Held(config.StickUpAlt) {
		t.Fatal("StickUpAlt must fold into StickUp")
	}
}
