package ui

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/core/engine"
	"github.com/Nikodemek/ballgame/core/tilt"
	"github.com/Nikodemek/ballgame/internal/config"
)

func TestTiltPadRampsAndSettles(t *testing.T) {
	cfg := config.Default()
	p := NewTiltPad(cfg.Tilt)
	holdKeys(t, ebiten.KeyArrowUp)
	for i := 0; i < 100; i++ {
		p.Update()
	}
	if got := p.ReadChannel(uint8(cfg.Tilt.ChannelX)); got != padRest-padSpan {
		t.Fatalf("x = %d, want %d", got, padRest-padSpan)
	}
	if got := p.ReadChannel(uint8(cfg.Tilt.ChannelY)); got != padRest {
		t.Fatalf("y moved without a key: %d", got)
	}
	if got := p.ReadChannel(7); got != padRest {
		t.Fatalf("unmapped channel = %d", got)
	}

	holdKeys(t)
	for i := 0; i < 100; i++ {
		p.Update()
	}
	if got := p.ReadChannel(uint8(cfg.Tilt.ChannelX)); got != padRest {
		t.Fatalf("x did not settle: %d", got)
	}
}

func TestTiltPadDirectionsMatchBoard(t *testing.T) {
	cfg := config.Default()
	cases := map[ebiten.Key]struct {
		axis tilt.Axis
		want string
	}{
		ebiten.KeyArrowUp:    {tilt.AxisX, "up"},
		ebiten.KeyArrowDown:  {tilt.AxisX, "down"},
		ebiten.KeyArrowRight: {tilt.AxisY, "right"},
		ebiten.KeyArrowLeft:  {tilt.AxisY, "left"},
	}
	for key, c := range cases {
		p := NewTiltPad(cfg.Tilt)
		s := tilt.NewSampler(p, cfg.Tilt)
		ref := s.Calibrate(c.axis)
		holdKeys(t, key)
		for i := 0; i < 20; i++ {
			p.Update()
		}
		m := tilt.NewCurve(cfg.Tilt).Resolve(c.axis, s.Deviation(ref, c.axis))
		if m.Dir.String() != c.want || m.Strength == 0 {
			t.Fatalf("%v: move %+v, want %s", key, m, c.want)
		}
	}
}

func TestKeypadLatchesOnePress(t *testing.T) {
	k := NewKeypad()
	holdKeys(t, ebiten.KeyS)
	k.Update()
	if got := k.PollKey(); got != engine.KeyUp {
		t.Fatalf("first poll = %v, want KeyUp", got)
	}
	if got := k.PollKey(); got != engine.KeyNone {
		t.Fatalf("second poll = %v, want KeyNone", got)
	}
}

func TestLEDBar(t *testing.T) {
	if err := NewLEDBar(false).Init(); !errors.Is(err, ErrNoLEDBar) {
		t.Fatalf("unfitted bar Init = %v", err)
	}
	b := NewLEDBar(true)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	b.SetPin(3, true)
	b.SetPin(12, true)
	b.SetPin(3, false)
	b.SetPin(99, true)
	if b.Lit(3) || !b.Lit(12) {
		t.Fatalf("pins = %016b", b.pins.Load())
	}
}
