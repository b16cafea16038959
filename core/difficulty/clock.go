// Package difficulty tracks survival time and the obstacle delay derived from it.
package difficulty

import (
	"sync/atomic"

	"github.com/Nikodemek/ballgame/internal/config"
)

// Clock counts elapsed ticks and shrinks the obstacle delay every cfg.Every
// ticks. Tick is called by the elapsed-time task only; Elapsed, Delay and
// Score may be read from any task.
type Clock struct {
	cfg     config.Difficulty
	elapsed atomic.Uint32
	delay   atomic.Uint32
	counter atomic.Uint32
}

func NewClock(cfg config.Difficulty) *Clock {
	c := &Clock{cfg: cfg}
	c.Reset()
	return c
}

// Reset restores the start-of-session values.
func (c *Clock) Reset() {
	c.elapsed.Store(0)
	c.counter.Store(0)
	c.delay.Store(uint32(c.cfg.InitialDelay))
}

// Tick advances elapsed time by one and reports whether the delay shrank.
func (c *Clock) Tick() bool {
	c.elapsed.Add(1)
	if c.counter.Add(1) < uint32(c.cfg.Every) {
		return false
	}
	c.counter.Store(0)
	d := c.delay.Load()
	next := d - d/uint32(c.cfg.Divisor)
	if floor := uint32(c.cfg.Floor); next < floor {
		next = floor
	}
	if next > d {
		next = d
	}
	c.delay.Store(next)
	return next != d
}

func (c *Clock) Elapsed() uint32 { return c.elapsed.Load() }

// Delay is the current pause between obstacle advances, in delay units.
func (c *Clock) Delay() uint32 { return c.delay.Load() }

// Score truncates elapsed ticks to a multiple of ten.
func (c *Clock) Score() uint32 { return Score(c.Elapsed()) }

func Score(elapsed uint32) uint32 { return elapsed / 10 * 10 }
