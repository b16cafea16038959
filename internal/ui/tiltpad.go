package ui

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/internal/config"
)

const (
	padRest = 512
	padSpan = 240
	padStep = 12
)

// TiltPad stands in for the accelerometer. Holding an arrow key tilts the
// board a little further every frame; releasing it lets the board settle.
// Up and Down drive the X channel, Left and Right the Y channel.
type TiltPad struct {
	chX, chY uint8
	x, y     atomic.Int32
}

func NewTiltPad(cfg config.Tilt) *TiltPad {
	p := &TiltPad{chX: uint8(cfg.ChannelX), chY: uint8(cfg.ChannelY)}
	p.x.Store(padRest)
	p.y.Store(padRest)
	return p
}

// ReadChannel implements tilt.ADC. Unmapped channels read the rest value.
func (p *TiltPad) ReadChannel(ch uint8) uint16 {
	switch ch {
	case p.chX:
		return uint16(p.x.Load())
	case p.chY:
		return uint16(p.y.Load())
	}
	return padRest
}

// Update samples the keyboard. Call it once per ebiten tick.
func (p *TiltPad) Update() {
	// A smaller sample than the reference tilts up (X) or right (Y).
	p.x.Store(approach(p.x.Load(), target(ebiten.KeyArrowUp, ebiten.KeyArrowDown)))
	p.y.Store(approach(p.y.Load(), target(ebiten.KeyArrowRight, ebiten.KeyArrowLeft)))
}

func target(lower, higher ebiten.Key) int32 {
	t := int32(padRest)
	if isKeyPressed(lower) {
		t -= padSpan
	}
	if isKeyPressed(higher) {
		t += padSpan
	}
	return t
}

func approach(cur, want int32) int32 {
	switch {
	case cur < want:
		return min(cur+padStep, want)
	case cur > want:
		return max(cur-padStep, want)
	}
	return cur
}
