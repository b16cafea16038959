// Package ui is the desktop board: an ebiten window with the LCD, the LED bar
// and a status bar, driven by the keyboard.
package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/core/engine"
	"github.com/Nikodemek/ballgame/internal/config"
	game_log "github.com/Nikodemek/ballgame/internal/log"
)

const (
	topOffset = 20 // status-bar height in logical px
	ledWidth  = 8
)

// Board is the simulated hardware the controller runs on.
type Board struct {
	LCD  *LCD
	Pad  *TiltPad
	Keys *Keypad
	LEDs *LEDBar
}

func NewBoard(cfg config.Config) *Board {
	return &Board{
		LCD:  NewLCD(cfg.Display.Width, cfg.Display.Height),
		Pad:  NewTiltPad(cfg.Tilt),
		Keys: NewKeypad(),
		LEDs: NewLEDBar(cfg.Indicator.Enabled),
	}
}

// Hardware bundles the board with a scheduler and an optional sounder.
func (b *Board) Hardware(s engine.Scheduler, snd engine.Sounder) engine.Hardware {
	return engine.Hardware{Scheduler: s, ADC: b.Pad, Display: b.LCD, Indicator: b.LEDs, Sound: snd}
}

// Game implements ebiten.Game.
type Game struct {
	board     *Board
	transport *Transport
	logger    *game_log.Logger

	lcdRect, leftLEDs, rightLEDs image.Rectangle
	winW, winH                   int

	tex     *ebiten.Image
	frame   []byte
	version uint64
}

func NewGame(board *Board, sb Scoreboard, logger *game_log.Logger) *Game {
	lcd := board.LCD.Bounds()
	g := &Game{board: board, logger: logger}
	g.winW = lcd.Dx() + 2*ledWidth
	g.winH = lcd.Dy() + topOffset
	g.lcdRect = lcd.Add(image.Pt(ledWidth, topOffset))
	g.leftLEDs = image.Rect(0, topOffset, ledWidth, g.winH)
	g.rightLEDs = image.Rect(g.winW-ledWidth, topOffset, g.winW, g.winH)
	g.transport = NewTransport(image.Rect(0, 0, g.winW, topOffset), sb, board.Keys)
	g.frame = make([]byte, 4*lcd.Dx()*lcd.Dy())
	// Force the first copy.
	g.version = ^uint64(0)
	return g
}

// WindowSize is the logical size times scale.
func (g *Game) WindowSize(scale int) (int, int) {
	return g.winW * max(scale, 1), g.winH * max(scale, 1)
}

func (g *Game) Update() error {
	if isKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Infof("[UI] escape pressed, closing")
		return ebiten.Termination
	}
	g.board.Pad.Update()
	g.board.Keys.Update()
	g.transport.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBoard)
	if g.tex == nil {
		g.tex = ebiten.NewImage(g.lcdRect.Dx(), g.lcdRect.Dy())
	}
	if v, changed := g.board.LCD.CopyPixels(g.frame, g.version); changed {
		g.tex.WritePixels(g.frame)
		g.version = v
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(g.lcdRect.Min.X), float64(g.lcdRect.Min.Y))
	screen.DrawImage(g.tex, &op)
	g.board.LEDs.Draw(screen, g.leftLEDs, g.rightLEDs)
	g.transport.Draw(screen)
}

// Layout keeps the logical screen fixed; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.winW, g.winH
}
