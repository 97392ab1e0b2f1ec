// Package sim simulates the console side of the bus, so the protocol can be
// tested without hardware.
package sim

import (
	"time"

	"github.com/clktmr/rukaibox/joybus"
)

// Clock is a manually advanced joybus.Clock. The zero value starts at the
// Unix epoch.
type Clock struct {
	now   time.Time
	Slept time.Duration
}

func (c *Clock) Now() time.Time {
	if c.now.IsZero() {
		c.now = time.Unix(0, 0)
	}
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	c.Advance(d)
	c.Slept += d
}

func (c *Clock) Advance(d time.Duration) {
	c.now = c.Now().Add(d)
}

// Step is how much time passes for every empty read of the receive FIFO.
const Step = 10 * time.Microsecond

// FIFODepth is the number of words the transmit FIFO holds.
const FIFODepth = 4

// Line implements joybus.Serializer. Bytes queued with Send are received by
// the device in order, pushed words are collected into Frames.
type Line struct {
	Clock *Clock

	// Busy is the number of LineHigh calls reporting a driven line before
	// it idles.
	Busy int

	// Drained is called once whenever a read finds no queued bytes left.
	Drained func()

	// ClearRx makes ClearFIFOs drop queued bytes like the hardware does.
	// Off by default, since Send queues the whole console script up front
	// and not only the bytes already on the wire.
	ClearRx bool

	rx      []byte
	tx      []uint32
	txFill  int
	entry   joybus.Entry
	drained bool

	Frames        [][]byte
	Words         [][]uint32
	Restarts      []joybus.Entry
	Clears        int
	FullPolls     int
	IdlePolls     int
	WriteViolated bool
}

func NewLine() *Line {
	return &Line{Clock: new(Clock)}
}

// Send queues bytes sent by the console.
func (l *Line) Send(b ...byte) {
	l.rx = append(l.rx, b...)
	l.drained = false
}

// Pending returns the number of queued bytes not yet received.
func (l *Line) Pending() int {
	return len(l.rx)
}

func (l *Line) LineHigh() bool {
	if l.Busy > 0 {
		l.Busy--
		l.IdlePolls++
		l.Clock.Advance(Step)
		return false
	}
	return true
}

func (l *Line) Restart(entry joybus.Entry) {
	l.entry = entry
	l.Restarts = append(l.Restarts, entry)
}

func (l *Line) ClearFIFOs() {
	l.Clears++
	l.tx = nil
	l.txFill = 0
	if l.ClearRx {
		l.rx = nil
	}
}

func (l *Line) TxFull() bool {
	if l.txFill >= FIFODepth {
		// the serializer shifts out the whole FIFO while the caller waits
		l.txFill = 0
		l.FullPolls++
		return true
	}
	return false
}

func (l *Line) Push(word uint32) {
	if l.entry != joybus.EntryWrite {
		l.WriteViolated = true
	}
	l.txFill++
	l.tx = append(l.tx, word)
	if word&(1<<23) == 0 {
		return
	}

	frame := make([]byte, len(l.tx))
	for i, w := range l.tx {
		frame[i] = byte(w >> 24)
	}
	l.Frames = append(l.Frames, frame)
	l.Words = append(l.Words, l.tx)
	l.tx = nil
	l.txFill = 0

	// after the stop bit the serializer falls through to the read program
	l.entry = joybus.EntryRead
}

func (l *Line) Pop() (uint32, bool) {
	if len(l.rx) == 0 || l.entry != joybus.EntryRead {
		if len(l.rx) == 0 && !l.drained {
			l.drained = true
			if l.Drained != nil {
				l.Drained()
			}
		}
		l.Clock.Advance(Step)
		return 0, false
	}
	b := l.rx[0]
	l.rx = l.rx[1:]
	return uint32(b), true
}
