// Package joybus contains the wire format of the GameCube controller protocol
// as seen from the controller side: command decoding, the identify and origin
// responses and the poll report. Port implements byte-level receive and
// framed send on top of a hardware serializer.
//
// See https://jefflongo.dev/posts/gc-controller-reverse-engineering-part-1/
package joybus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTimeout        = errors.New("joybus receive timeout")
	ErrUnknownCommand = errors.New("unknown joybus command")
)

// Command is the first byte of a console request.
type Command byte

const (
	CmdProbe       Command = 0x00
	CmdPoll        Command = 0x40
	CmdOrigin      Command = 0x41
	CmdRecalibrate Command = 0x42
	CmdReset       Command = 0xff
)

// PollArgs is the number of bytes following CmdPoll. They carry the analog
// mode and rumble state, which are ignored.
const PollArgs = 2

// Known reports whether c is a command the controller answers.
func (c Command) Known() bool {
	switch c {
	case CmdProbe, CmdPoll, CmdOrigin, CmdRecalibrate, CmdReset:
		return true
	}
	return false
}

func (c Command) String() string {
	switch c {
	case CmdProbe:
		return "Probe"
	case CmdPoll:
		return "Poll"
	case CmdOrigin:
		return "Origin"
	case CmdRecalibrate:
		return "Recalibrate"
	case CmdReset:
		return "Reset"
	}
	return fmt.Sprintf("Unknown(%#02x)", byte(c))
}

// Responses with fixed content.
var (
	// Standard controller device id.
	IdentifyResponse = [...]byte{0x09, 0x00, 0x03}

	// There are no analog sticks, so the origin is always perfectly
	// centered.
	OriginResponse = [...]byte{
		0,   // buttons1
		1,   // buttons2
		128, // stick x
		128, // stick y
		128, // cstick x
		128, // cstick y
		0,   // left trigger
		0,   // right trigger
		0,   // reserved
		0,   // reserved
	}

	// Report sent for a poll before any input was sampled. It shares the
	// origin's button bytes, so the console sees D-Left held for this one
	// poll.
	NeutralReport = [ReportSize]byte(OriginResponse[:ReportSize])
)

type ButtonMask uint16

// Bit layout of the two button bytes, first byte in the high half.
const (
	ButtonA ButtonMask = 1 << (8 + iota)
	ButtonB
	ButtonX
	ButtonY
	ButtonStart
)

const (
	ButtonDLeft ButtonMask = 1 << iota
	ButtonDRight
	ButtonDDown
	ButtonDUp
	ButtonZ
	ButtonR
	ButtonL
	ButtonUseOrigin // always set in poll reports
)

var buttonNames = [16]string{
	0:  "←",
	1:  "→",
	2:  "↓",
	3:  "↑",
	4:  "Z",
	5:  "R",
	6:  "L",
	8:  "A",
	9:  "B",
	10: "X",
	11: "Y",
	12: "Start",
}

func (b ButtonMask) String() string {
	var sb strings.Builder
	for i := 15; i >= 0; i-- {
		v := buttonNames[i]
		if v == "" || b&(1<<i) == 0 {
			continue
		}
		if sb.Len() != 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(v)
	}
	return sb.String()
}
