package model

import (
	"math/rand/v2"

	"github.com/Nikodemek/ballgame/internal/config"
)

// Spawner draws fresh obstacle properties. It is not safe for concurrent use;
// the obstacle task owns it.
type Spawner struct {
	rng   *rand.Rand
	cfg   config.Obstacles
	width int
}

func NewSpawner(cfg config.Obstacles, fieldWidth int, seed uint64) *Spawner {
	return &Spawner{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		cfg:   cfg,
		width: fieldWidth,
	}
}

// between returns a value in [lo, hi]; an inverted range yields 0.
func (s *Spawner) between(lo, hi int) int {
	if hi < lo {
		return 0
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Next returns an obstacle on the spawn line with randomized size, speed and
// horizontal position fully inside the field.
func (s *Spawner) Next() Obstacle {
	w := s.between(s.cfg.WidthMin, s.cfg.WidthMax)
	return Obstacle{
		Width:  w,
		Height: s.between(s.cfg.HeightMin, s.cfg.HeightMax),
		Speed:  s.between(s.cfg.SpeedMin, s.cfg.SpeedMax),
		X:      s.between(0, s.width-w),
		Y:      0,
	}
}
