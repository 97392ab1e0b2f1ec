package simulate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/drivers/gamecube"
	"github.com/clktmr/rukaibox/firmware"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
	"github.com/clktmr/rukaibox/joybus/sim"
	"github.com/clktmr/rukaibox/tools/configfile"
	"github.com/spf13/pflag"
)

const usageString = `Run the firmware against a simulated console.

Usage: %s [flags]

The console probes the controller, requests its origin and then sends one
poll per --press. Each press lists the physical buttons held during that
poll, e.g. --press LeftIndex,RightPinky.

`

var (
	flags = pflag.NewFlagSet("simulate", pflag.ExitOnError)

	configFile = flags.StringP("config", "c", "", "Profile file (default configuration if empty)")
	presses    = flags.StringArrayP("press", "p", nil, "Buttons held during one poll, comma separated")
	verbose    = flags.BoolP("verbose", "v", false, "Log protocol events")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "simulate")
	flags.PrintDefaults()
}

// ParsePress parses a comma separated list of physical buttons.
func ParsePress(s string) (b input.Buttons, err error) {
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := config.ParsePhysicalButton(name)
		if err != nil {
			return 0, err
		}
		b = b.With(p)
	}
	return b, nil
}

// Run boots a device with cfg and answers one poll per step. It returns the
// reports sent in response to the polls.
func Run(cfg *config.Config, steps []input.Buttons, logger *log.Logger) ([]joybus.Report, error) {
	region, err := config.Region(cfg)
	if err != nil {
		return nil, err
	}

	line := sim.NewLine()
	line.Send(byte(joybus.CmdProbe), byte(joybus.CmdOrigin))
	for range steps {
		line.Send(byte(joybus.CmdPoll), 0x03, 0x00)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	line.Drained = cancel

	// The first sample is the bootloader check.
	var state input.State
	queue := append([]input.Buttons{0}, steps...)
	sampler := input.SamplerFunc(func() input.Buttons {
		if len(queue) == 0 {
			return 0
		}
		b := queue[0]
		queue = queue[1:]
		state.Update(b)
		if p := state.Pressed(); p != 0 {
			logger.Printf("pressed  %v", p)
		}
		if r := state.Released(); r != 0 {
			logger.Printf("released %v", r)
		}
		return b
	})

	timing := gamecube.DefaultTiming
	timing.Timeout = time.Millisecond
	dev := firmware.New(firmware.Hardware{
		Buttons:    sampler,
		Bus:        line,
		Clock:      line.Clock,
		LED:        firmware.LEDFunc(func(bool) {}),
		Bootloader: func() {},
		Config:     bytes.NewReader(region),
		Log:        logger,
		Options:    []gamecube.Option{gamecube.WithTiming(timing)},
	})
	if err := dev.Run(ctx); !errors.Is(err, context.Canceled) {
		return nil, err
	}
	if dev.Mode() != firmware.ModeConsole {
		return nil, fmt.Errorf("device in %v mode", dev.Mode())
	}

	var reports []joybus.Report
	for _, f := range line.Frames {
		if len(f) == joybus.ReportSize {
			reports = append(reports, joybus.ParseReport([joybus.ReportSize]byte(f)))
		}
	}
	return reports, nil
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 0 {
		flags.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = configfile.Load(*configFile)
		if err != nil {
			log.Fatalln(err)
		}
	}

	var steps []input.Buttons
	for _, s := range *presses {
		b, err := ParsePress(s)
		if err != nil {
			log.Fatalln(err)
		}
		steps = append(steps, b)
	}

	var out io.Writer = io.Discard
	if *verbose {
		out = os.Stderr
	}
	reports, err := Run(cfg, steps, log.New(out, "", 0))
	if err != nil {
		log.Fatalln(err)
	}
	for i, r := range reports {
		b := r.Bytes()
		fmt.Printf("poll %d: % x  %v\n", i, b[:], r)
	}
}
