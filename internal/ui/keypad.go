package ui

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/core/engine"
)

// Keypad latches joystick presses between polls: Space or Enter is CENTER,
// S is UP.
type Keypad struct {
	pending atomic.Uint32
}

func NewKeypad() *Keypad { return &Keypad{} }

func (k *Keypad) Press(key engine.Key) { k.pending.Store(uint32(key)) }

// PollKey implements engine.Keypad. Each press is reported once.
func (k *Keypad) PollKey() engine.Key {
	return engine.Key(k.pending.Swap(uint32(engine.KeyNone)))
}

// Update samples the keyboard. Call it once per ebiten tick.
func (k *Keypad) Update() {
	switch {
	case isKeyJustPressed(ebiten.KeySpace), isKeyJustPressed(ebiten.KeyEnter):
		k.Press(engine.KeyCenter)
	case isKeyJustPressed(ebiten.KeyS):
		k.Press(engine.KeyUp)
	}
}
