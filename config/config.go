// Package config defines the controller configuration and its persisted
// binary form.
//
// The configuration is written once by the host tooling into a fixed region
// of the device's flash and read back at boot. It is never modified at
// runtime.
package config

import (
	"errors"
	"fmt"
)

// Memory layout of the RP2040 flash.
const (
	FlashBase    = 0x1000_0000
	FlashSize    = 16 << 20
	RegionOffset = 15 << 20
	RegionSize   = 256
)

// Version is the current version of the persisted format.
const Version uint32 = 1

const (
	MaxProfiles   = 2
	MaxActivation = 10
)

var (
	ErrNoProfiles        = errors.New("config has no profiles")
	ErrTooManyProfiles   = errors.New("too many profiles")
	ErrActivationTooLong = errors.New("activation combination too long")
	ErrEnum              = errors.New("enum value out of range")
)

type Profile struct {
	// Activation lists the buttons that must be held together to switch to
	// this profile. An empty combination never triggers a switch.
	Activation []PhysicalButton
	Logic      BaseLogic
	Socd       SocdType
	Buttons    ButtonMapping
}

// Ignored returns the mapped logical buttons the profile's base logic never
// reads.
func (p *Profile) Ignored() (ignored []LogicalButton) {
	for l, b := range p.Buttons {
		if b != None && !p.Logic.Honors(LogicalButton(l)) {
			ignored = append(ignored, LogicalButton(l))
		}
	}
	return ignored
}

// Config is the complete device configuration. Profiles[0] is active at
// boot.
type Config struct {
	Version  uint32
	Profiles []Profile
}

// Validate checks the bounds of the persisted format.
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return ErrNoProfiles
	}
	if len(c.Profiles) > MaxProfiles {
		return fmt.Errorf("%w: %d > %d", ErrTooManyProfiles, len(c.Profiles), MaxProfiles)
	}
	for i := range c.Profiles {
		if err := c.Profiles[i].validate(); err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return nil
}

func (p *Profile) validate() error {
	if len(p.Activation) > MaxActivation {
		return fmt.Errorf("%w: %d > %d", ErrActivationTooLong, len(p.Activation), MaxActivation)
	}
	for _, b := range p.Activation {
		if !b.Valid() {
			return fmt.Errorf("%w: activation %v", ErrEnum, b)
		}
	}
	if p.Logic > Rivals2 {
		return fmt.Errorf("%w: %v", ErrEnum, p.Logic)
	}
	if p.Socd > Neutral {
		return fmt.Errorf("%w: %v", ErrEnum, p.Socd)
	}
	for i, b := range p.Buttons {
		if !b.Valid() {
			return fmt.Errorf("%w: %v mapped to %v", ErrEnum, LogicalButton(i), b)
		}
	}
	return nil
}

// DefaultButtons returns the layout the device ships with.
func DefaultButtons() ButtonMapping {
	m := NewButtonMapping()

	m[ModX] = LeftThumbLeft
	m[ModY] = LeftThumbRight

	m[ButtonStart] = Start
	m[ButtonA] = RightThumbMiddle
	m[ButtonB] = RightIndex
	m[ButtonX] = RightMiddle
	m[ButtonY] = RightMiddle2
	m[ButtonZ] = RightRing

	m[DpadUp] = RightPinky2

	m[LDigital] = LeftPinky
	m[RDigital] = RightIndex2
	m[RAnalog] = RightRing2

	m[StickLeft] = LeftRing
	m[StickRight] = LeftIndex
	m[StickUp] = RightPinky
	m[StickUpAlt] = LeftMiddle2
	m[StickDown] = LeftMiddle

	m[CstickLeft] = RightThumbLeft
	m[CstickRight] = RightThumbRight
	m[CstickUp] = RightThumbUp
	m[CstickDown] = RightThumbDown

	return m
}

// Default returns a configuration with a ProjectPlus profile active at boot
// and a Rivals2 profile selected by holding Start and LeftPinky.
func Default() *Config {
	return &Config{
		Version: Version,
		Profiles: []Profile{
			{
				Logic:   ProjectPlus,
				Socd:    SecondInputPriority,
				Buttons: DefaultButtons(),
			},
			{
				Activation: []PhysicalButton{Start, LeftPinky},
				Logic:      Rivals2,
				Socd:       SecondInputPriority,
				Buttons:    DefaultButtons(),
			},
		},
	}
}
