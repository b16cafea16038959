package term

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Nikodemek/ballgame/core/engine"
	"github.com/Nikodemek/ballgame/core/indicator"
	"github.com/Nikodemek/ballgame/internal/config"
)

func newTestBoard(t *testing.T, cfg config.Config) (*Board, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 40)
	return New(s, cfg, func() string { return "SCORE 0" }, nil), s
}

func fgAt(s tcell.SimulationScreen, x, y int) (rune, tcell.Color, tcell.Color) {
	r, _, st, _ := s.GetContent(x, y)
	fg, bg, _ := st.Decompose()
	return r, fg, bg
}

func TestRenderHalfBlocks(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	b.DrawRect(0, 0, 2, 2, engine.White)
	b.Render()

	r, fg, bg := fgAt(s, lcdLeft, lcdTop)
	if r != '▀' {
		t.Fatalf("cell rune = %q", r)
	}
	if fg != tcellColor(engine.White) || bg != tcellColor(engine.Black) {
		t.Fatalf("cell colors fg=%v bg=%v, want white over black", fg, bg)
	}
	if _, fg, _ := fgAt(s, lcdLeft+1, lcdTop); fg != tcellColor(engine.Black) {
		t.Fatalf("neighbour cell lit")
	}
}

func TestThinObstacleStillShows(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	b.DrawRect(10, 9, 20, 1, engine.White) // 1px high, top half of row 2
	b.Render()
	if _, fg, _ := fgAt(s, lcdLeft+5, lcdTop+2); fg != tcellColor(engine.White) {
		t.Fatalf("1px obstacle vanished")
	}
}

func TestTextIsDroppedByCoveringRect(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	b.GotoText(20, 16)
	b.PutText("Hi")
	b.Render()
	if r, _, _ := fgAt(s, lcdLeft+10, lcdTop+4); r != 'H' {
		t.Fatalf("text missing, got %q", r)
	}
	b.DrawRect(0, 0, 130, 130, engine.Black)
	b.Render()
	if r, _, _ := fgAt(s, lcdLeft+10, lcdTop+4); r != '▀' {
		t.Fatalf("covered text still drawn: %q", r)
	}
}

func TestStatusLine(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	b.Render()
	if r, _, _ := fgAt(s, lcdLeft, 0); r != 'S' {
		t.Fatalf("status line missing, got %q", r)
	}
}

func TestKeysTiltAndSettle(t *testing.T) {
	cfg := config.Default()
	b, _ := newTestBoard(t, cfg)
	chX := uint8(cfg.Tilt.ChannelX)

	b.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if got := b.ReadChannel(chX); got != tiltRest-tiltSpan {
		t.Fatalf("x after Up = %d", got)
	}
	for i := 0; i < tiltSpan/tiltDecay; i++ {
		b.settle()
	}
	if got := b.ReadChannel(chX); got != tiltRest {
		t.Fatalf("x did not settle: %d", got)
	}
	if got := b.ReadChannel(9); got != tiltRest {
		t.Fatalf("unmapped channel = %d", got)
	}
}

func TestKeysFeedKeypadAndQuit(t *testing.T) {
	b, _ := newTestBoard(t, config.Default())
	if b.handleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatalf("space should not quit")
	}
	if got := b.PollKey(); got != engine.KeyCenter {
		t.Fatalf("space = %v, want CENTER", got)
	}
	if got := b.PollKey(); got != engine.KeyNone {
		t.Fatalf("press reported twice")
	}
	b.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if got := b.PollKey(); got != engine.KeyUp {
		t.Fatalf("s = %v, want UP", got)
	}
	if !b.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q should quit")
	}
}

func TestLEDsRenderBesideLCD(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	b.SetPin(0, true)
	b.SetPin(15, true)
	b.Render()
	if r, _, _ := fgAt(s, ledCol, lcdTop); r != '●' {
		t.Fatalf("left LED = %q", r)
	}
	if r, _, _ := fgAt(s, lcdLeft+b.cols()+1, lcdTop); r != '●' {
		t.Fatalf("right LED = %q", r)
	}
	if r, _, _ := fgAt(s, ledCol, lcdTop+b.rows()/indicator.Rows); r != '·' {
		t.Fatalf("second left LED = %q", r)
	}
}

func TestUnfittedBarFailsInit(t *testing.T) {
	cfg := config.Default()
	cfg.Indicator.Enabled = false
	b, _ := newTestBoard(t, cfg)
	if err := b.Init(); !errors.Is(err, indicator.ErrNoDriver) {
		t.Fatalf("Init = %v", err)
	}
}

func TestRunReturnsOnQuitKey(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	done := make(chan struct{})
	go func() {
		b.Run(context.Background())
		close(done)
	}()
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Esc")
	}
}

func TestPumpStopsWhenRunIsDone(t *testing.T) {
	b, s := newTestBoard(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event) // nobody reads
	done := make(chan struct{})
	go func() {
		b.pump(ctx, events)
		close(done)
	}()
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("event pump still blocked after cancel")
	}
}
