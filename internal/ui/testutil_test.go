package ui

import (
	"io"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	game_log "github.com/Nikodemek/ballgame/internal/log"
)

var testLogger = game_log.New(io.Discard, game_log.LevelError)

// holdKeys makes the given keys read as held and just pressed until the test
// ends.
func holdKeys(t *testing.T, keys ...ebiten.Key) {
	t.Helper()
	held := map[ebiten.Key]bool{}
	for _, k := range keys {
		held[k] = true
	}
	restore := SetInputForTest(
		func() (int, int) { return -1, -1 },
		func(ebiten.MouseButton) bool { return false },
		func(k ebiten.Key) bool { return held[k] },
		func(k ebiten.Key) bool { return held[k] },
	)
	t.Cleanup(restore)
}

// click simulates a mouse click at (x,y) and releases it on the next update.
func click(update func(), x, y int) {
	restore := SetInputForTest(
		func() (int, int) { return x, y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft },
		func(ebiten.Key) bool { return false },
		func(ebiten.Key) bool { return false },
	)
	update()
	restore()
	restore = SetInputForTest(
		func() (int, int) { return x, y },
		func(ebiten.MouseButton) bool { return false },
		func(ebiten.Key) bool { return false },
		func(ebiten.Key) bool { return false },
	)
	update()
	restore()
}

type fakeScoreboard struct {
	running bool
	score   uint32
}

func (f *fakeScoreboard) Running() bool   { return f.running }
func (f *fakeScoreboard) Score() uint32   { return f.score }
func (f *fakeScoreboard) Elapsed() uint32 { return f.score + 3 }
func (f *fakeScoreboard) Delay() uint32   { return 200 }
