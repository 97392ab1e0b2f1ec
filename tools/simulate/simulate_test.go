package simulate

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
)

func TestParsePress(t *testing.T) {
	b, err := ParsePress("LeftIndex, right-pinky,,start")
	if err != nil {
		t.Fatal(err)
	}
	if want := input.Of(config.LeftIndex, config.RightPinky, config.Start); b != want {
		t.Fatalf("expected %v, got %v", want, b)
	}
	if _, err := ParsePress("LeftIndex,Select"); !errors.Is(err, config.ErrEnum) {
		t.Fatalf("expected %v, got %v", config.ErrEnum, err)
	}
}

func TestRun(t *testing.T) {
	var logs bytes.Buffer
	steps := []input.Buttons{
		input.Of(config.LeftIndex),
		input.Of(config.LeftThumbLeft, config.LeftIndex, config.RightPinky),
		input.Of(config.Start, config.LeftPinky),
		input.Of(config.LeftIndex),
		0,
	}
	reports, err := Run(config.Default(), steps, log.New(&logs, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	want := []joybus.Report{
		{StickX: 228, StickY: 128, CstickX: 128, CstickY: 128},
		{StickX: 198, StickY: 162, CstickX: 128, CstickY: 128},
		{Buttons: joybus.ButtonStart | joybus.ButtonL, StickX: 128, StickY: 128, CstickX: 128, CstickY: 128},
		{StickX: 255, StickY: 128, CstickX: 128, CstickY: 128},
		{StickX: 128, StickY: 128, CstickX: 128, CstickY: 128},
	}
	if len(reports) != len(want) {
		t.Fatalf("expected %d reports, got %d", len(want), len(reports))
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("poll %d: expected %v, got %v", i, want[i], reports[i])
		}
	}

	for _, s := range []string{"pressed  LeftIndex", "released Start + LeftPinky", "profile 1 (Rivals2) active"} {
		if !strings.Contains(logs.String(), s) {
			t.Errorf("expected log to contain %q, got:\n%s", s, logs.String())
		}
	}
}

func TestRunNoPolls(t *testing.T) {
	reports, err := Run(config.Default(), nil, log.New(io.Discard, "", 0))
	if err != nil || len(reports) != 0 {
		t.Fatalf("expected no reports, got %v (%v)", reports, err)
	}
}
