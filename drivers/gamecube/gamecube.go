// Package gamecube implements the controller side of the GameCube joybus
// protocol. The console drives all traffic, the controller only answers.
package gamecube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/clktmr/rukaibox/joybus"
)

var ErrNoConsole = errors.New("gamecube: no console detected")

// Timing holds the delays of the protocol.
type Timing struct {
	// Settle is the delay between a command and the start of the response.
	Settle time.Duration

	// Resync is waited after an unknown command or a timeout, before the
	// receiver is restarted.
	Resync time.Duration

	// PollLeadIn is waited after a poll command before its argument bytes
	// are read.
	PollLeadIn time.Duration

	// Timeout is the maximum time to wait for a single byte.
	Timeout time.Duration
}

var DefaultTiming = Timing{
	Settle:     4 * time.Microsecond,
	Resync:     130 * time.Microsecond,
	PollLeadIn: 40 * time.Microsecond,
	Timeout:    2 * time.Second,
}

// Stats counts the handled commands.
type Stats struct {
	Probes   uint64
	Origins  uint64
	Polls    uint64
	Unknown  uint64
	Timeouts uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("probes=%d origins=%d polls=%d unknown=%d timeouts=%d",
		s.Probes, s.Origins, s.Polls, s.Unknown, s.Timeouts)
}

type Option func(*Controller)

func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller answers console requests on a single bus. It is not safe for
// concurrent use.
type Controller struct {
	port   *joybus.Port
	clk    joybus.Clock
	timing Timing
	log    *log.Logger
	stats  Stats
}

// New performs the startup handshake. The first command received decides
// whether a console is attached: a timeout or an unknown command return an
// error wrapping ErrNoConsole.
func New(s joybus.Serializer, clk joybus.Clock, opts ...Option) (*Controller, error) {
	c := &Controller{
		port:   joybus.NewPort(s, clk),
		clk:    clk,
		timing: DefaultTiming,
		log:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.port.ResetForRead()

	cmd, err := c.recvCommand()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoConsole, err)
	}
	if !c.answer(cmd) {
		switch cmd {
		case joybus.CmdPoll:
			c.RespondToPoll(joybus.NeutralReport)
		default:
			c.resync()
			return nil, fmt.Errorf("%w: %w: %v", ErrNoConsole, joybus.ErrUnknownCommand, cmd)
		}
	}
	c.log.Printf("gamecube: console detected, first command %v", cmd)
	return c, nil
}

func (c *Controller) recvCommand() (joybus.Command, error) {
	b, err := c.port.RecvByte(c.timing.Timeout)
	if err != nil {
		c.stats.Timeouts++
		return 0, err
	}
	cmd := joybus.Command(b)
	switch cmd {
	case joybus.CmdProbe, joybus.CmdReset:
		c.stats.Probes++
	case joybus.CmdOrigin, joybus.CmdRecalibrate:
		c.stats.Origins++
	case joybus.CmdPoll:
		c.stats.Polls++
	default:
		c.stats.Unknown++
	}
	return cmd, nil
}

// answer sends the fixed response of identify and origin commands. It
// reports whether cmd was handled.
func (c *Controller) answer(cmd joybus.Command) bool {
	switch cmd {
	case joybus.CmdProbe, joybus.CmdReset:
		c.clk.Sleep(c.timing.Settle)
		c.port.SendFrame(joybus.IdentifyResponse[:])
	case joybus.CmdOrigin, joybus.CmdRecalibrate:
		// No analog sticks, so the origin is always perfectly centered.
		c.clk.Sleep(c.timing.Settle)
		c.port.SendFrame(joybus.OriginResponse[:])
	default:
		return false
	}
	return true
}

func (c *Controller) resync() {
	c.clk.Sleep(c.timing.Resync)
	c.port.ResetForRead()
}

// WaitForPoll answers identify and origin requests until a poll command was
// received. Timeouts and unknown commands restart the receiver and are
// otherwise ignored. It returns early only if ctx is done.
func (c *Controller) WaitForPoll(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := c.recvCommand()
		if err != nil {
			c.log.Printf("gamecube: %v, resyncing", err)
			c.resync()
			continue
		}
		if cmd == joybus.CmdPoll {
			return nil
		}
		if !c.answer(cmd) {
			c.log.Printf("gamecube: %v, resyncing", cmd)
			c.resync()
		}
	}
}

// RespondToPoll completes a poll whose command byte was already received.
// The argument bytes are read but ignored, a missing one is not an error.
func (c *Controller) RespondToPoll(report [joybus.ReportSize]byte) {
	c.clk.Sleep(c.timing.PollLeadIn)
	for i := 0; i < joybus.PollArgs; i++ {
		c.port.RecvByte(c.timing.Timeout)
	}
	c.clk.Sleep(c.timing.Settle)
	c.port.SendFrame(report[:])
}

// Poll waits for the next poll and answers it with the report returned by
// sample, which is called after the poll command was received.
func (c *Controller) Poll(ctx context.Context, sample func() joybus.Report) error {
	if err := c.WaitForPoll(ctx); err != nil {
		return err
	}
	c.RespondToPoll(sample().Bytes())
	return nil
}

func (c *Controller) Stats() Stats {
	return c.stats
}
