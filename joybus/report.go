package joybus

import "fmt"

// ReportSize is the length of a poll response.
const ReportSize = 8

// Axis values of a centered stick.
const AxisCenter = 128

// Report is the controller state sent in response to CmdPoll.
type Report struct {
	Buttons          ButtonMask
	StickX, StickY   uint8
	CstickX, CstickY uint8
	TriggerL         uint8
	TriggerR         uint8
}

// Bytes returns the report as sent on the wire.
func (r Report) Bytes() [ReportSize]byte {
	buttons := r.Buttons | ButtonUseOrigin
	return [ReportSize]byte{
		byte(buttons >> 8),
		byte(buttons),
		r.StickX,
		r.StickY,
		r.CstickX,
		r.CstickY,
		r.TriggerL,
		r.TriggerR,
	}
}

func (r Report) String() string {
	return fmt.Sprintf("buttons=[%v] stick=(%d,%d) cstick=(%d,%d) triggers=(%d,%d)",
		r.Buttons, r.StickX, r.StickY, r.CstickX, r.CstickY, r.TriggerL, r.TriggerR)
}

// ParseReport decodes a report as sent on the wire. ButtonUseOrigin is
// dropped.
func ParseReport(b [ReportSize]byte) Report {
	return Report{
		Buttons:  (ButtonMask(b[0])<<8 | ButtonMask(b[1])) &^ ButtonUseOrigin,
		StickX:   b[2],
		StickY:   b[3],
		CstickX:  b[4],
		CstickY:  b[5],
		TriggerL: b[6],
		TriggerR: b[7],
	}
}
