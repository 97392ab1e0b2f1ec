package joybus

import (
	"time"
)

// Entry selects the program a serializer runs after a restart.
type Entry uint8

const (
	EntryRead Entry = iota
	EntryWrite
)

func (e Entry) String() string {
	if e == EntryWrite {
		return "write"
	}
	return "read"
}

// Serializer is the hardware shifting bits on the data line, e.g. a PIO state
// machine. Received bytes are pushed as words with the data in the low byte.
// Words for sending carry the data in bits 31..24 and the stop flag in bit 23.
type Serializer interface {
	// LineHigh reports whether the data line currently idles high.
	LineHigh() bool
	Restart(entry Entry)
	ClearFIFOs()
	TxFull() bool
	Push(word uint32)
	Pop() (word uint32, ok bool)
}

// Clock is the time source for receive deadlines and protocol delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock uses the time package.
var SystemClock Clock = systemClock{}

const stopBit = 1 << 23

// Word returns the serializer word for sending b. The stop flag terminates
// the frame after this byte.
func Word(b byte, stop bool) uint32 {
	w := uint32(b) << 24
	if stop {
		w |= stopBit
	}
	return w
}

// Port sends and receives bytes on the bus. It is not safe for concurrent
// use.
type Port struct {
	s   Serializer
	clk Clock
}

func NewPort(s Serializer, clk Clock) *Port {
	return &Port{s: s, clk: clk}
}

// RecvByte blocks until a byte was received or the timeout elapsed, in which
// case ErrTimeout is returned.
func (p *Port) RecvByte(timeout time.Duration) (byte, error) {
	start := p.clk.Now()
	for {
		if w, ok := p.s.Pop(); ok {
			return byte(w), nil
		}
		if p.clk.Now().Sub(start) > timeout {
			return 0, ErrTimeout
		}
	}
}

// SendFrame transmits data as a single frame. It waits for the line to be
// idle, since driving it while the console still does would corrupt both
// transfers.
func (p *Port) SendFrame(data []byte) {
	for !p.s.LineHigh() {
		// wait
	}

	p.ResetForWrite()

	for i, b := range data {
		for p.s.TxFull() {
			// wait
		}
		p.s.Push(Word(b, i == len(data)-1))
	}
}

// ResetForRead discards buffered words and restarts the serializer at the
// receive program.
func (p *Port) ResetForRead() {
	p.s.ClearFIFOs()
	p.s.Restart(EntryRead)
}

// ResetForWrite discards buffered words and restarts the serializer at the
// send program.
func (p *Port) ResetForWrite() {
	p.s.ClearFIFOs()
	p.s.Restart(EntryWrite)
}
