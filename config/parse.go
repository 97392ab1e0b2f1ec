package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// foldName makes names from profile files comparable: case is folded,
// separators are dropped and the "hand" of "LeftHandPinky" style names is
// optional.
func foldName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.':
			return -1
		}
		return r
	}, s)
	s = cases.Fold().String(s)
	s = strings.Replace(s, "lefthand", "left", 1)
	s = strings.Replace(s, "righthand", "right", 1)
	return s
}

func lookup[T ~uint8](kind, s string, names []string) (T, error) {
	key := foldName(s)
	for i, name := range names {
		if foldName(name) == key {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrEnum, kind, s)
}

func ParsePhysicalButton(s string) (PhysicalButton, error) {
	return lookup[PhysicalButton]("physical button", s, physicalNames[:])
}

// ParseLogicalButton also accepts "StickUp2" for StickUpAlt.
func ParseLogicalButton(s string) (LogicalButton, error) {
	if foldName(s) == "stickup2" {
		return StickUpAlt, nil
	}
	return lookup[LogicalButton]("logical button", s, logicalNames[:])
}

func ParseBaseLogic(s string) (BaseLogic, error) {
	return lookup[BaseLogic]("base logic", s, []string{ProjectPlus.String(), Rivals2.String()})
}

func ParseSocdType(s string) (SocdType, error) {
	return lookup[SocdType]("socd type", s, []string{SecondInputPriority.String(), Neutral.String()})
}
