// Package indicator mirrors the ball's vertical position on a 16-LED bar.
package indicator

import (
	"sync/atomic"

	"github.com/Nikodemek/ballgame/internal/utils"
)

const (
	Pins = 16
	Rows = Pins / 2
)

// Driver controls the LED bar. Init reports whether the bar is present.
type Driver interface {
	Init() error
	SetPin(index int, on bool)
}

const noRow = -1

// Mapper lights pins r and 15-r for the row the ball is in. Update may be
// called from several tasks at once; a given ball position always produces the
// same lit pair.
type Mapper struct {
	drv       Driver
	rowHeight int
	present   atomic.Bool
	row       atomic.Int32
}

func NewMapper(drv Driver, fieldHeight int) *Mapper {
	m := &Mapper{drv: drv, rowHeight: max(fieldHeight/Rows, 1)}
	m.row.Store(noRow)
	return m
}

// Probe initializes the driver. While it keeps failing every other call is a
// no-op.
func (m *Mapper) Probe() error {
	if m.drv == nil {
		m.present.Store(false)
		return ErrNoDriver
	}
	err := m.drv.Init()
	m.present.Store(err == nil)
	return err
}

func (m *Mapper) Present() bool { return m.present.Load() }

// Reset forgets the lit row so the next Update lights a pair unconditionally.
func (m *Mapper) Reset() { m.row.Store(noRow) }

// Row returns the row currently lit, or -1.
func (m *Mapper) Row() int { return int(m.row.Load()) }

// RowFor maps a vertical position onto one of the eight rows.
func (m *Mapper) RowFor(y int) int {
	return utils.Clamp(y/m.rowHeight, 0, Rows-1)
}

func (m *Mapper) Update(y int) {
	if !m.present.Load() {
		return
	}
	next := int32(m.RowFor(y))
	for {
		prev := m.row.Load()
		if prev == next {
			return
		}
		if !m.row.CompareAndSwap(prev, next) {
			continue
		}
		if prev != noRow {
			m.setPair(int(prev), false)
		}
		m.setPair(int(next), true)
		m.settle(next)
		return
	}
}

// settle moves the lit pair from lit to the stored row until they agree. An
// update that claimed a newer row while this one wrote its pins may have had
// its pair switched off here, so the last writer always leaves its row lit.
func (m *Mapper) settle(lit int32) {
	for {
		cur := m.row.Load()
		if cur == lit {
			return
		}
		if lit != noRow {
			m.setPair(int(lit), false)
		}
		if cur != noRow {
			m.setPair(int(cur), true)
		}
		lit = cur
	}
}

func (m *Mapper) setPair(row int, on bool) {
	m.drv.SetPin(row, on)
	m.drv.SetPin(Pins-1-row, on)
}

// ShowOff sweeps a lit pair from the outside in and back out, pausing for
// delay units between steps, and leaves the bar dark.
func (m *Mapper) ShowOff(delay int, sleep func(units int)) {
	if !m.present.Load() {
		if m.Probe() != nil {
			return
		}
	}
	if prev := m.row.Swap(noRow); prev != noRow {
		m.setPair(int(prev), false)
	}
	for p := -(Rows - 1); p < Rows; p++ {
		left := utils.Abs(p)
		right := Pins - 1 - left
		m.drv.SetPin(left, true)
		m.drv.SetPin(right, true)
		sleep(delay)
		m.drv.SetPin(left, false)
		m.drv.SetPin(right, false)
	}
}
