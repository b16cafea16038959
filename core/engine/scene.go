package engine

import (
	"strconv"

	"github.com/Nikodemek/ballgame/core/model"
	"github.com/Nikodemek/ballgame/internal/utils"
)

// Version is shown on the welcome screen.
const Version = "(0.1.0)"

const (
	glyphWidth   = 8
	scoreBoxY    = 45
	scoreBoxH    = 40
	scoreLabelY  = 48
	scoreDigitsY = 65
)

func (c *Controller) fillRect(r model.Rect) {
	c.hw.Display.DrawRect(r.X, r.Y, r.W, r.H, White)
}

func (c *Controller) eraseRect(r model.Rect) {
	c.hw.Display.DrawRect(r.X, r.Y, r.W, r.H, Black)
}

// initScene clears the board, retires every obstacle and draws the ball at its
// start position.
func (c *Controller) initScene(s *session) {
	d := c.hw.Display
	d.SetColors(White, Black)
	d.Clear()
	c.pool.RetireAll()
	c.mapper.Reset()
	c.fillRect(s.ball.Load().Rect())
}

// drawScore renders the white score window across the middle of the board.
func (c *Controller) drawScore(score uint32) {
	d := c.hw.Display
	w := c.field.Width
	d.DrawRect(0, scoreBoxY, w, scoreBoxH, White)
	d.SetColors(Black, White)
	d.GotoText(centered(w, len("SCORE")), scoreLabelY)
	d.PutText("SCORE")
	// The digit offset ignores a zero score, so "0" sits half a glyph right.
	d.GotoText(w/2-utils.Digits(score)*glyphWidth/2, scoreDigitsY)
	d.PutText(strconv.FormatUint(uint64(score), 10))
}

// ShowWelcome draws the boot screen shown before the first session.
func (c *Controller) ShowWelcome() {
	d := c.hw.Display
	w := c.field.Width
	d.SetColors(Black, White)
	d.Clear()
	lines := []struct {
		text string
		y    int
	}{
		{"Welcome to", 16},
		{"Ball The Game", 30},
		{":)", 64},
		{"(C) 2022", 98},
		{Version, 112},
	}
	for _, l := range lines {
		d.GotoText(centered(w, len(l.text)), l.y)
		d.PutText(l.text)
	}
}

func centered(width, chars int) int {
	return max((width-chars*glyphWidth)/2, 0)
}
