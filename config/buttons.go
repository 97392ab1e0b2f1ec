package config

import "fmt"

// PhysicalButton identifies a switch on the device. The buttons are named by
// the finger they are pressed with. The lower row is the base row, a trailing
// 2 denotes the row above.
//
// The ordinals are part of the persisted format and must not be reordered.
type PhysicalButton uint8

const (
	Start PhysicalButton = iota
	LeftPinky
	LeftRing
	LeftMiddle
	LeftIndex

	LeftMiddle2

	LeftThumbLeft
	LeftThumbRight

	RightIndex
	RightMiddle
	RightRing
	RightPinky

	RightIndex2
	RightMiddle2
	RightRing2
	RightPinky2

	RightThumbLeft
	RightThumbRight
	RightThumbUp
	RightThumbDown
	RightThumbMiddle

	// None is never pressed. Unmapped logical buttons point here.
	None
)

// NumPhysicalButtons is the number of real switches, None excluded.
const NumPhysicalButtons = int(None)

var physicalNames = [...]string{
	"Start",
	"LeftPinky",
	"LeftRing",
	"LeftMiddle",
	"LeftIndex",
	"LeftMiddle2",
	"LeftThumbLeft",
	"LeftThumbRight",
	"RightIndex",
	"RightMiddle",
	"RightRing",
	"RightPinky",
	"RightIndex2",
	"RightMiddle2",
	"RightRing2",
	"RightPinky2",
	"RightThumbLeft",
	"RightThumbRight",
	"RightThumbUp",
	"RightThumbDown",
	"RightThumbMiddle",
	"None",
}

func (b PhysicalButton) String() string {
	if int(b) < len(physicalNames) {
		return physicalNames[b]
	}
	return fmt.Sprintf("PhysicalButton(%d)", uint8(b))
}

// Valid reports whether b is a real switch or None.
func (b PhysicalButton) Valid() bool {
	return b <= None
}

// LogicalButton is an abstract controller function a physical button can be
// mapped to. The order equals the slot order of a ButtonMapping and is part
// of the persisted format.
type LogicalButton uint8

const (
	ModX LogicalButton = iota
	ModY

	ButtonStart
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonZ

	DpadUp
	DpadDown
	DpadLeft
	DpadRight

	LDigital
	RDigital
	LAnalog
	RAnalog

	StickLeft
	StickRight
	StickUp
	StickUpAlt // second slot, OR-ed into StickUp
	StickDown

	CstickLeft
	CstickRight
	CstickUp
	CstickDown

	NumLogicalButtons int = iota
)

var logicalNames = [...]string{
	"ModX",
	"ModY",
	"Start",
	"A",
	"B",
	"X",
	"Y",
	"Z",
	"DpadUp",
	"DpadDown",
	"DpadLeft",
	"DpadRight",
	"LDigital",
	"RDigital",
	"LAnalog",
	"RAnalog",
	"StickLeft",
	"StickRight",
	"StickUp",
	"StickUpAlt",
	"StickDown",
	"CstickLeft",
	"CstickRight",
	"CstickUp",
	"CstickDown",
}

func (b LogicalButton) String() string {
	if int(b) < len(logicalNames) {
		return logicalNames[b]
	}
	return fmt.Sprintf("LogicalButton(%d)", uint8(b))
}

// BaseLogic selects the stick coordinate tables and dpad rules tuned for a
// specific game.
type BaseLogic uint8

const (
	ProjectPlus BaseLogic = iota
	Rivals2
)

func (l BaseLogic) String() string {
	switch l {
	case ProjectPlus:
		return "ProjectPlus"
	case Rivals2:
		return "Rivals2"
	}
	return fmt.Sprintf("BaseLogic(%d)", uint8(l))
}

// Honors reports whether the base logic reads logical button b. ProjectPlus
// has no native dpad except DpadUp.
func (l BaseLogic) Honors(b LogicalButton) bool {
	if l == ProjectPlus {
		return b != DpadDown && b != DpadLeft && b != DpadRight
	}
	return true
}

// SocdType is the policy for simultaneous opposing cardinal directions.
type SocdType uint8

const (
	SecondInputPriority SocdType = iota
	Neutral
)

func (s SocdType) String() string {
	switch s {
	case SecondInputPriority:
		return "SecondInputPriority"
	case Neutral:
		return "Neutral"
	}
	return fmt.Sprintf("SocdType(%d)", uint8(s))
}

// ButtonMapping assigns one physical button to every logical button.
type ButtonMapping [NumLogicalButtons]PhysicalButton

// NewButtonMapping returns a mapping with every logical button unmapped.
func NewButtonMapping() (m ButtonMapping) {
	for i := range m {
		m[i] = None
	}
	return
}
