// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/tools/configfile"
	"github.com/clktmr/rukaibox/tools/uf2"
	"github.com/spf13/pflag"
)

const usageString = `Profile file to flashable config image converter.

Usage: %s [flags] [profiles.yaml]

Without a profile file the default configuration is written.

`

var (
	flags = pflag.NewFlagSet("image", pflag.ExitOnError)

	output = flags.StringP("output", "o", "", "Output file (default derived from input)")
	format = flags.String("format", "uf2", "bin | uf2")
	run    = flags.String("run", "", "Flash the image with command")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "image")
	flags.PrintDefaults()
}

// Write encodes cfg as an image of the config region. The bin format holds
// the raw region, uf2 targets the region's flash address.
func Write(w io.Writer, cfg *config.Config, format string) error {
	region, err := config.Region(cfg)
	if err != nil {
		return err
	}

	switch format {
	case "bin":
		_, err = w.Write(region)
		return err
	case "uf2":
		u := uf2.NewWriter(w, config.FlashBase+config.RegionOffset, uf2.FamilyIDPresent, uf2.RP2040, len(region))
		if _, err = u.Write(region); err != nil {
			return err
		}
		return u.Flush()
	}
	return fmt.Errorf("%s format not supported", format)
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	var (
		cfg    *config.Config
		infile string
		err    error
	)
	switch flags.NArg() {
	case 0:
		cfg = config.Default()
		infile = "config"
	case 1:
		infile = flags.Arg(0)
		cfg, err = configfile.Load(infile)
		if err != nil {
			log.Fatalln(err)
		}
	default:
		flags.Usage()
		os.Exit(1)
	}
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		for _, l := range p.Ignored() {
			log.Printf("warning: profile %d: %v is not used by %v", i, l, p.Logic)
		}
	}

	outfile := *output
	if outfile == "" {
		outfile = strings.TrimSuffix(infile, filepath.Ext(infile)) + "." + *format
	}

	out, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	err = Write(out, cfg, *format)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outfile)
		log.Fatalln(err)
	}
	log.Printf("wrote %s (%d profiles)", outfile, len(cfg.Profiles))

	if *run != "" {
		if err := flash(*run, outfile); err != nil {
			log.Fatalln("run:", err)
		}
	}
}

// flash runs cmdline with the image path appended.
func flash(cmdline, path string) error {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	args = append(args, path)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
