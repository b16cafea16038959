package model

import (
	"testing"

	"github.com/Nikodemek/ballgame/internal/config"
)

func TestSpawnerStaysInRanges(t *testing.T) {
	cfg := config.Default().Obstacles
	cfg.WidthMax = 80
	cfg.SpeedMax = 6
	s := NewSpawner(cfg, 130, 7)
	for i := 0; i < 5000; i++ {
		o := s.Next()
		if o.Width < cfg.WidthMin || o.Width > cfg.WidthMax {
			t.Fatalf("width %d out of range", o.Width)
		}
		if o.Height < cfg.HeightMin || o.Height > cfg.HeightMax {
			t.Fatalf("height %d out of range", o.Height)
		}
		if o.Speed < cfg.SpeedMin || o.Speed > cfg.SpeedMax {
			t.Fatalf("speed %d out of range", o.Speed)
		}
		if o.X < 0 || o.X > 130-o.Width {
			t.Fatalf("x %d does not fit width %d", o.X, o.Width)
		}
		if o.Y != 0 {
			t.Fatalf("spawned off the spawn line at Y=%d", o.Y)
		}
	}
}

func TestSpawnerIsDeterministicPerSeed(t *testing.T) {
	cfg := config.Default().Obstacles
	a := NewSpawner(cfg, 130, 99)
	b := NewSpawner(cfg, 130, 99)
	for i := 0; i < 20; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}
