// Package configfile loads device configurations from profile files. Any
// format supported by viper can be used, e.g. YAML or TOML:
//
//	profiles:
//	  - logic: ProjectPlus
//	    socd: SecondInputPriority
//	    buttons:
//	      mod_x: LeftThumbLeft
//	      stick_up: RightPinky
//	      stick_up2: LeftMiddle2
//	  - activation_combination: [Start, LeftPinky]
//	    logic: Rivals2
//	    buttons: ...
//
// Logical buttons missing from "buttons" are unmapped. ProjectPlus profiles
// accept dpad_down, dpad_left and dpad_right but never read them, see
// config.Profile.Ignored.
package configfile

import (
	"fmt"
	"io"

	"github.com/clktmr/rukaibox/config"
	"github.com/spf13/viper"
)

type file struct {
	Version  uint32    `mapstructure:"version"`
	Profiles []profile `mapstructure:"profiles"`
}

type profile struct {
	Activation []string          `mapstructure:"activation_combination"`
	Logic      string            `mapstructure:"logic"`
	Socd       string            `mapstructure:"socd"`
	Buttons    map[string]string `mapstructure:"buttons"`
}

// Load reads the profile file at path. The format is derived from the file
// extension.
func Load(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return decode(v)
}

// Read reads a profile file of the given format, e.g. "yaml".
func Read(r io.Reader, format string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (*config.Config, error) {
	var f file
	if err := v.Unmarshal(&f); err != nil {
		return nil, err
	}

	c := &config.Config{Version: f.Version}
	if c.Version == 0 {
		c.Version = config.Version
	}
	for i, pf := range f.Profiles {
		p, err := pf.convert()
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		c.Profiles = append(c.Profiles, p)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (pf *profile) convert() (p config.Profile, err error) {
	if pf.Logic != "" {
		if p.Logic, err = config.ParseBaseLogic(pf.Logic); err != nil {
			return
		}
	}
	if pf.Socd != "" {
		if p.Socd, err = config.ParseSocdType(pf.Socd); err != nil {
			return
		}
	}
	for _, s := range pf.Activation {
		var b config.PhysicalButton
		if b, err = config.ParsePhysicalButton(s); err != nil {
			return
		}
		p.Activation = append(p.Activation, b)
	}

	p.Buttons = config.NewButtonMapping()
	for ls, ps := range pf.Buttons {
		var l config.LogicalButton
		if l, err = config.ParseLogicalButton(ls); err != nil {
			return
		}
		if p.Buttons[l], err = config.ParsePhysicalButton(ps); err != nil {
			return
		}
	}
	return
}
