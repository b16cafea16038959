package difficulty

import (
	"testing"

	"github.com/Nikodemek/ballgame/internal/config"
)

func TestDelayNonIncreasingWithFloor(t *testing.T) {
	cfg := config.Default().Difficulty
	c := NewClock(cfg)
	prev := c.Delay()
	if prev != uint32(cfg.InitialDelay) {
		t.Fatalf("initial delay = %d", prev)
	}
	shrinks := 0
	for i := 0; i < 200000; i++ {
		if c.Tick() {
			shrinks++
		}
		d := c.Delay()
		if d > prev {
			t.Fatalf("delay grew from %d to %d at tick %d", prev, d, i)
		}
		if d < uint32(cfg.Floor) {
			t.Fatalf("delay %d fell below floor %d", d, cfg.Floor)
		}
		prev = d
	}
	if shrinks == 0 {
		t.Fatalf("delay never shrank")
	}
}

func TestShrinkEveryN(t *testing.T) {
	cfg := config.Default().Difficulty
	c := NewClock(cfg)
	for i := 1; i < cfg.Every; i++ {
		if c.Tick() {
			t.Fatalf("shrank early at tick %d", i)
		}
	}
	if !c.Tick() {
		t.Fatalf("no shrink at tick %d", cfg.Every)
	}
	if got := c.Delay(); got != 190 {
		t.Fatalf("delay = %d, want 190", got)
	}
}

func TestFloorReachedWithSmallDivisor(t *testing.T) {
	cfg := config.Default().Difficulty
	cfg.Divisor = 2
	cfg.Every = 1
	c := NewClock(cfg)
	for i := 0; i < 50; i++ {
		c.Tick()
	}
	if got := c.Delay(); got != uint32(cfg.Floor) {
		t.Fatalf("delay = %d, want floor %d", got, cfg.Floor)
	}
}

func TestResetAndScore(t *testing.T) {
	c := NewClock(config.Default().Difficulty)
	for i := 0; i < 137; i++ {
		c.Tick()
	}
	if c.Elapsed() != 137 || c.Score() != 130 {
		t.Fatalf("elapsed %d score %d", c.Elapsed(), c.Score())
	}
	c.Reset()
	if c.Elapsed() != 0 || c.Delay() != 200 {
		t.Fatalf("reset left elapsed %d delay %d", c.Elapsed(), c.Delay())
	}
}

func TestScoreFormula(t *testing.T) {
	for _, ticks := range []uint32{0, 5, 9, 10, 19, 1234} {
		if got, want := Score(ticks), ticks/10*10; got != want {
			t.Fatalf("Score(%d) = %d, want %d", ticks, got, want)
		}
	}
}
