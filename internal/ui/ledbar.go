package ui

import (
	"errors"
	"image"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/core/indicator"
)

var ErrNoLEDBar = errors.New("ui: LED bar not fitted")

// LEDBar implements indicator.Driver as a bitmask drawn beside the LCD.
type LEDBar struct {
	fitted bool
	pins   atomic.Uint32
}

func NewLEDBar(fitted bool) *LEDBar { return &LEDBar{fitted: fitted} }

func (b *LEDBar) Init() error {
	if !b.fitted {
		return ErrNoLEDBar
	}
	b.pins.Store(0)
	return nil
}

func (b *LEDBar) SetPin(i int, on bool) {
	if i < 0 || i >= indicator.Pins {
		return
	}
	bit := uint32(1) << i
	for {
		old := b.pins.Load()
		next := old &^ bit
		if on {
			next = old | bit
		}
		if b.pins.CompareAndSwap(old, next) {
			return
		}
	}
}

func (b *LEDBar) Lit(i int) bool { return b.pins.Load()&(1<<i) != 0 }

// Draw renders pins 0..7 top to bottom in the left column and 15..8 in the
// right one, so a lit pair shows at the ball's height on both sides.
func (b *LEDBar) Draw(dst *ebiten.Image, left, right image.Rectangle) {
	if !b.fitted {
		return
	}
	rowH := left.Dy() / indicator.Rows
	for r := 0; r < indicator.Rows; r++ {
		l := image.Rect(left.Min.X, left.Min.Y+r*rowH, left.Max.X, left.Min.Y+(r+1)*rowH)
		rr := image.Rect(right.Min.X, right.Min.Y+r*rowH, right.Max.X, right.Min.Y+(r+1)*rowH)
		DefaultLEDStyle.Draw(dst, insetRect(l, 1), b.Lit(r))
		DefaultLEDStyle.Draw(dst, insetRect(rr, 1), b.Lit(indicator.Pins-1-r))
	}
}
