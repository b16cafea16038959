// Package tilt turns raw accelerometer samples into ball moves.
package tilt

import (
	"github.com/Nikodemek/ballgame/core/model"
	"github.com/Nikodemek/ballgame/internal/config"
	"github.com/Nikodemek/ballgame/internal/utils"
)

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Y"
}

// ADC is the analogue-to-digital converter. ReadChannel blocks until the
// conversion completes and returns a 10-bit sample.
type ADC interface {
	ReadChannel(ch uint8) uint16
}

const sampleMask = 0x3ff

// Sampler maps the two tilt axes onto ADC channels. It keeps no state; the
// neutral readings belong to the session that calibrated them.
type Sampler struct {
	adc      ADC
	channels [2]uint8
}

func NewSampler(adc ADC, cfg config.Tilt) *Sampler {
	return &Sampler{adc: adc, channels: [2]uint8{uint8(cfg.ChannelX), uint8(cfg.ChannelY)}}
}

func (s *Sampler) Sample(a Axis) uint16 {
	return s.adc.ReadChannel(s.channels[a]) & sampleMask
}

// Calibrate reads the neutral sample for the axis.
func (s *Sampler) Calibrate(a Axis) uint16 {
	return s.Sample(a)
}

// Deviation returns ref minus the current sample.
func (s *Sampler) Deviation(ref uint16, a Axis) int {
	return int(ref) - int(s.Sample(a))
}

// Move is what a tilt task does with one reading.
type Move struct {
	Dir      model.Direction
	Strength int
	Delay    int
}

// Curve holds the response constants shared by both axes.
type Curve struct {
	cfg config.Tilt
}

func NewCurve(cfg config.Tilt) Curve { return Curve{cfg: cfg} }

func (c Curve) scale(a Axis) int {
	if a == AxisX {
		return c.cfg.ScaleX
	}
	return c.cfg.ScaleY
}

// Strength is 0 inside the deadband, otherwise |delta|/scale capped at MaxStrength.
func (c Curve) Strength(a Axis, delta int) int {
	abs := utils.Abs(delta)
	if abs < c.cfg.Deadband {
		return 0
	}
	return utils.Clamp(abs/c.scale(a), 0, c.cfg.MaxStrength)
}

// Delay shortens linearly with strength and never drops below MinDelay.
func (c Curve) Delay(strength int) int {
	if strength == 0 {
		return c.cfg.IdleDelay
	}
	d := c.cfg.BaseDelay - c.cfg.DecayPerStep*strength
	if d < c.cfg.MinDelay {
		return c.cfg.MinDelay
	}
	return d
}

// Direction maps the sign of delta onto the axis' pair of directions:
// X+ up, X- down, Y+ right, Y- left.
func Direction(a Axis, delta int) model.Direction {
	switch {
	case a == AxisX && delta > 0:
		return model.Up
	case a == AxisX:
		return model.Down
	case delta > 0:
		return model.Right
	default:
		return model.Left
	}
}

// Resolve combines strength, delay and direction for one reading. A zero
// strength yields model.None.
func (c Curve) Resolve(a Axis, delta int) Move {
	s := c.Strength(a, delta)
	m := Move{Strength: s, Delay: c.Delay(s)}
	if s > 0 {
		m.Dir = Direction(a, delta)
	}
	return m
}
