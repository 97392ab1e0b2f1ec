// Package firmware ties sampling, profile mapping and the console protocol
// together. All hardware is passed in explicitly, so the device can be run
// against a simulated bus.
package firmware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/drivers/gamecube"
	"github.com/clktmr/rukaibox/input"
	"github.com/clktmr/rukaibox/joybus"
	"github.com/clktmr/rukaibox/profile"
)

// ErrBootloader is returned by Run after the device rebooted into the USB
// bootloader. On real hardware Run never returns in that case.
var ErrBootloader = errors.New("rebooted to bootloader")

// Mode is the top-level state of the device.
type Mode uint8

const (
	ModeBoot       Mode = iota
	ModeDiagnostic      // no valid configuration
	ModeHost            // no console answered the handshake
	ModeConsole
	ModeBootloader
)

func (m Mode) String() string {
	switch m {
	case ModeBoot:
		return "boot"
	case ModeDiagnostic:
		return "diagnostic"
	case ModeHost:
		return "host"
	case ModeConsole:
		return "console"
	case ModeBootloader:
		return "bootloader"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Blink periods of the LED.
const (
	bootSettle       = 10 * time.Millisecond
	bootBlinks       = 10
	bootBlink        = 100 * time.Millisecond
	diagnosticToggle = 5 * time.Second
	hostToggle       = time.Second
	consoleBlink     = 10 // polls per LED period
)

type LED interface {
	Set(on bool)
}

// LEDFunc adapts a function to the LED interface.
type LEDFunc func(on bool)

func (f LEDFunc) Set(on bool) { f(on) }

// Hardware is everything the firmware needs from the board.
type Hardware struct {
	Buttons input.Sampler
	Bus     joybus.Serializer
	Clock   joybus.Clock
	LED     LED

	// Bootloader reboots into the USB bootloader.
	Bootloader func()

	// Config is the persisted configuration region.
	Config io.ReaderAt

	// Log is optional.
	Log *log.Logger

	// Bus options, e.g. gamecube.WithTiming.
	Options []gamecube.Option
}

// Device runs the firmware on some Hardware.
type Device struct {
	hw   Hardware
	log  *log.Logger
	mode Mode

	cfg      *config.Config
	selector *profile.Selector
	gc       *gamecube.Controller
}

func New(hw Hardware) *Device {
	d := &Device{hw: hw, log: hw.Log}
	if d.log == nil {
		d.log = log.New(io.Discard, "", 0)
	}
	return d
}

func (d *Device) Mode() Mode {
	return d.mode
}

// Controller returns the console protocol handler, which is nil unless the
// device entered ModeConsole.
func (d *Device) Controller() *gamecube.Controller {
	return d.gc
}

// Selector returns the profile selector, which is nil if no valid
// configuration was loaded.
func (d *Device) Selector() *profile.Selector {
	return d.selector
}

func (d *Device) setMode(m Mode) {
	d.log.Printf("firmware: %v mode", m)
	d.mode = m
}

func (d *Device) startHeld() bool {
	return d.hw.Buttons.Sample().Pressed(config.Start)
}

func (d *Device) bootloader() error {
	d.setMode(ModeBootloader)
	d.hw.LED.Set(false)
	d.hw.Bootloader()
	return ErrBootloader
}

// Run boots the device and serves the console until ctx is done. Holding
// Start during boot enters the bootloader. Without a valid configuration the
// device stays in ModeDiagnostic, without a console in ModeHost. Both
// modes enter the bootloader once Start is pressed.
func (d *Device) Run(ctx context.Context) error {
	d.setMode(ModeBoot)
	clk := d.hw.Clock

	clk.Sleep(bootSettle)
	if d.startHeld() {
		return d.bootloader()
	}
	for i := 0; i < bootBlinks; i++ {
		d.hw.LED.Set(true)
		clk.Sleep(bootBlink)
		d.hw.LED.Set(false)
		clk.Sleep(bootBlink)
	}

	cfg, err := config.Read(d.hw.Config)
	if err != nil {
		d.log.Printf("firmware: loading config: %v", err)
		d.setMode(ModeDiagnostic)
		return d.idle(ctx, diagnosticToggle)
	}
	d.cfg = cfg
	d.selector = profile.NewSelector(cfg)

	d.gc, err = gamecube.New(d.hw.Bus, clk, append([]gamecube.Option{gamecube.WithLogger(d.log)}, d.hw.Options...)...)
	if err != nil {
		d.log.Print("firmware: ", err)
		d.setMode(ModeHost)
		return d.idle(ctx, hostToggle)
	}

	d.setMode(ModeConsole)
	return d.serve(ctx)
}

// idle toggles the LED with the given period and waits for Start.
func (d *Device) idle(ctx context.Context, period time.Duration) error {
	led := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		led = !led
		d.hw.LED.Set(led)
		d.hw.Clock.Sleep(period)
		if d.startHeld() {
			return d.bootloader()
		}
	}
}

func (d *Device) serve(ctx context.Context) error {
	for counter := 1; ; counter++ {
		d.hw.LED.Set(counter%consoleBlink < consoleBlink/2)

		if err := d.gc.WaitForPoll(ctx); err != nil {
			d.log.Printf("firmware: stopped after %v", d.gc.Stats())
			return err
		}
		b := d.hw.Buttons.Sample()
		active := d.selector.Active()
		if d.selector.Update(b) && d.selector.Active() != active {
			d.log.Printf("firmware: profile %d (%v) active", d.selector.Active(), d.selector.Engine().Logic())
		}
		d.gc.RespondToPoll(d.selector.Map(b).Bytes())
	}
}
