package joybus_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/clktmr/rukaibox/joybus"
	"github.com/clktmr/rukaibox/joybus/sim"
)

func TestCommand(t *testing.T) {
	tests := map[joybus.Command]struct {
		known bool
		name  string
	}{
		0x00: {true, "Probe"},
		0x40: {true, "Poll"},
		0x41: {true, "Origin"},
		0x42: {true, "Recalibrate"},
		0xff: {true, "Reset"},
		0x43: {false, "Unknown(0x43)"},
		0x14: {false, "Unknown(0x14)"},
	}
	for cmd, tc := range tests {
		if cmd.Known() != tc.known || cmd.String() != tc.name {
			t.Errorf("%#02x: expected %v %q, got %v %q", byte(cmd), tc.known, tc.name, cmd.Known(), cmd.String())
		}
	}
}

func TestResponses(t *testing.T) {
	if !bytes.Equal(joybus.IdentifyResponse[:], []byte{9, 0, 3}) {
		t.Fatalf("unexpected identify response %v", joybus.IdentifyResponse)
	}
	origin := []byte{0, 1, 128, 128, 128, 128, 0, 0, 0, 0}
	if !bytes.Equal(joybus.OriginResponse[:], origin) {
		t.Fatalf("expected %v, got %v", origin, joybus.OriginResponse)
	}
	if !bytes.Equal(joybus.NeutralReport[:], origin[:joybus.ReportSize]) {
		t.Fatalf("expected %v, got %v", origin[:joybus.ReportSize], joybus.NeutralReport)
	}
	if r := joybus.ParseReport(joybus.NeutralReport); r.Buttons != joybus.ButtonDLeft || r.StickX != 128 || r.CstickY != 128 {
		t.Fatalf("expected only D-Left held and centered sticks, got %v", r)
	}
}

func TestReportBytes(t *testing.T) {
	tests := map[string]struct {
		report joybus.Report
		want   [joybus.ReportSize]byte
	}{
		"idle": {
			joybus.Report{StickX: 128, StickY: 128, CstickX: 128, CstickY: 128},
			[8]byte{0x00, 0x80, 128, 128, 128, 128, 0, 0},
		},
		"faceButtons": {
			joybus.Report{Buttons: joybus.ButtonA | joybus.ButtonStart, StickX: 1, StickY: 255},
			[8]byte{0x11, 0x80, 1, 255, 0, 0, 0, 0},
		},
		"shoulders": {
			joybus.Report{Buttons: joybus.ButtonL | joybus.ButtonZ | joybus.ButtonDUp, TriggerL: 49, TriggerR: 49},
			[8]byte{0x00, 0xd8, 0, 0, 0, 0, 49, 49},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.report.Bytes(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got := joybus.ParseReport(tc.want); got != tc.report {
				t.Fatalf("expected %v, got %v", tc.report, got)
			}
		})
	}
}

func TestButtonMaskString(t *testing.T) {
	b := joybus.ButtonStart | joybus.ButtonA | joybus.ButtonDLeft | joybus.ButtonUseOrigin
	if s := b.String(); s != "Start + A + ←" {
		t.Fatalf("expected %q, got %q", "Start + A + ←", s)
	}
}

func TestSendFrame(t *testing.T) {
	line := sim.NewLine()
	line.Busy = 3
	port := joybus.NewPort(line, line.Clock)

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	port.SendFrame(data)

	if line.IdlePolls != 3 {
		t.Fatalf("expected 3 polls of the busy line, got %d", line.IdlePolls)
	}
	if len(line.Restarts) != 1 || line.Restarts[0] != joybus.EntryWrite || line.Clears != 1 {
		t.Fatalf("expected restart for write, got %v (clears=%d)", line.Restarts, line.Clears)
	}
	if line.WriteViolated {
		t.Fatal("pushed words while not in write mode")
	}
	if line.FullPolls == 0 {
		t.Fatal("expected to wait for transmit FIFO")
	}
	if len(line.Frames) != 1 || !bytes.Equal(line.Frames[0], data) {
		t.Fatalf("expected frame %v, got %v", data, line.Frames)
	}
	for i, w := range line.Words[0] {
		last := i == len(data)-1
		if stop := w&(1<<23) != 0; stop != last {
			t.Fatalf("word %d: expected stop %v, got %v", i, last, stop)
		}
		if w&0x7fffff != 0 {
			t.Fatalf("word %d: unexpected low bits %#x", i, w)
		}
	}
}

func TestRecvByte(t *testing.T) {
	line := sim.NewLine()
	port := joybus.NewPort(line, line.Clock)

	line.Send(0x40, 0x03)
	for _, want := range []byte{0x40, 0x03} {
		b, err := port.RecvByte(time.Millisecond)
		if err != nil || b != want {
			t.Fatalf("expected %#x, got %#x (%v)", want, b, err)
		}
	}

	start := line.Clock.Now()
	_, err := port.RecvByte(time.Millisecond)
	if !errors.Is(err, joybus.ErrTimeout) {
		t.Fatalf("expected %v, got %v", joybus.ErrTimeout, err)
	}
	if elapsed := line.Clock.Now().Sub(start); elapsed <= time.Millisecond {
		t.Fatalf("timed out early after %v", elapsed)
	}
}

func TestResetForRead(t *testing.T) {
	line := sim.NewLine()
	port := joybus.NewPort(line, line.Clock)
	port.ResetForWrite()
	port.ResetForRead()
	if len(line.Restarts) != 2 || line.Restarts[1] != joybus.EntryRead || line.Clears != 2 {
		t.Fatalf("unexpected restarts %v (clears=%d)", line.Restarts, line.Clears)
	}
}

func TestResetForReadDropsStale(t *testing.T) {
	line := sim.NewLine()
	line.ClearRx = true
	port := joybus.NewPort(line, line.Clock)
	line.Send(0x40, 0x03)
	port.ResetForRead()
	if line.Pending() != 0 {
		t.Fatalf("expected stale bytes dropped, got %d pending", line.Pending())
	}
	line.Send(0x41)
	if b, err := port.RecvByte(time.Millisecond); err != nil || b != 0x41 {
		t.Fatalf("expected 0x41, got %#x (%v)", b, err)
	}
}

func TestWord(t *testing.T) {
	if w := joybus.Word(0xa5, false); w != 0xa500_0000 {
		t.Fatalf("expected %#x, got %#x", 0xa500_0000, w)
	}
	if w := joybus.Word(0x01, true); w != 0x0180_0000 {
		t.Fatalf("expected %#x, got %#x", 0x0180_0000, w)
	}
}
