package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Nikodemek/ballgame/core/engine"
)

// Scoreboard is what the status bar shows about the session.
type Scoreboard interface {
	Running() bool
	Score() uint32
	Elapsed() uint32
	Delay() uint32
}

// Transport is the status bar above the LCD: session stats and Start/Stop
// buttons that feed the keypad.
type Transport struct {
	bounds   image.Rectangle
	board    Scoreboard
	startBtn *Button
	stopBtn  *Button
}

func NewTransport(bounds image.Rectangle, board Scoreboard, keys *Keypad) *Transport {
	t := &Transport{bounds: bounds, board: board}
	t.startBtn = NewButton("GO", StartButtonStyle, func() { keys.Press(engine.KeyUp) })
	t.stopBtn = NewButton("END", StopButtonStyle, func() {
		if board.Running() {
			keys.Press(engine.KeyCenter)
		}
	})
	grid := NewGridLayout(bounds, []float64{3, 1, 1}, []float64{1})
	t.startBtn.SetRect(insetRect(grid.Cell(1, 0), 2))
	t.stopBtn.SetRect(insetRect(grid.Cell(2, 0), 2))
	return t
}

func (t *Transport) Update() {
	x, y := cursorPosition()
	down := isMouseButtonPressed(ebiten.MouseButtonLeft)
	t.startBtn.Handle(x, y, down)
	t.stopBtn.Handle(x, y, down)
}

// Status is the text shown left of the buttons.
func (t *Transport) Status() string {
	if t.board.Running() {
		return fmt.Sprintf("%d d%d", t.board.Elapsed(), t.board.Delay())
	}
	return fmt.Sprintf("SCORE %d", t.board.Score())
}

func (t *Transport) Draw(dst *ebiten.Image) {
	drawRect(dst, t.bounds, colStatusBG, true)
	ebitenutil.DebugPrintAt(dst, t.Status(), t.bounds.Min.X+2, t.bounds.Min.Y+(t.bounds.Dy()-debugCharH)/2)
	t.startBtn.Draw(dst)
	t.stopBtn.Draw(dst)
}
