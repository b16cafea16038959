package ui

import (
	"image"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	debugCharW = 6  // width of a character drawn by DebugPrintAt
	debugCharH = 13 // height of a character drawn by DebugPrintAt
)

// insetRect returns r shrunk by pad pixels on all sides.
func insetRect(r image.Rectangle, pad int) image.Rectangle {
	return image.Rect(r.Min.X+pad, r.Min.Y+pad, r.Max.X-pad, r.Max.Y-pad)
}

// ButtonVisual is implemented by styles capable of drawing a button.
type ButtonVisual interface {
	Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool)
}

// Button is a clickable rectangle with a text label. OnClick fires once per
// press.
type Button struct {
	r       image.Rectangle
	Text    string
	Style   ButtonVisual
	OnClick func()
	pressed bool
	hovered bool
}

func NewButton(text string, style ButtonVisual, onClick func()) *Button {
	return &Button{Text: text, Style: style, OnClick: onClick}
}

func (b *Button) Rect() image.Rectangle { return b.r }

func (b *Button) SetRect(r image.Rectangle) { b.r = r }

func (b *Button) Draw(dst *ebiten.Image) {
	if b.Style != nil {
		b.Style.Draw(dst, b.r, b.pressed, b.hovered)
	}
	tr := b.textRect()
	ebitenutil.DebugPrintAt(dst, b.Text, tr.Min.X, tr.Min.Y)
}

func (b *Button) textRect() image.Rectangle {
	w := debugCharW * utf8.RuneCountInString(b.Text)
	h := debugCharH
	x := b.r.Min.X + (b.r.Dx()-w)/2
	y := b.r.Min.Y + (b.r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Handle processes the mouse state at (mx,my) and reports whether the button
// is held.
func (b *Button) Handle(mx, my int, pressed bool) bool {
	inside := image.Pt(mx, my).In(b.r)
	b.hovered = inside
	if pressed && inside {
		if !b.pressed && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = true
		return true
	}
	b.pressed = false
	return false
}

// GridLayout splits a rectangle into rows and columns using fractional weights.
type GridLayout struct {
	bounds     image.Rectangle
	colWeights []float64
	rowWeights []float64
	colPos     []int
	rowPos     []int
}

func NewGridLayout(b image.Rectangle, cols, rows []float64) *GridLayout {
	g := &GridLayout{bounds: b, colWeights: cols, rowWeights: rows}
	g.recalc()
	return g
}

func (g *GridLayout) recalc() {
	g.colPos = positions(g.bounds.Min.X, g.bounds.Max.X, g.colWeights)
	g.rowPos = positions(g.bounds.Min.Y, g.bounds.Max.Y, g.rowWeights)
}

func positions(lo, hi int, weights []float64) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	pos := make([]int, len(weights)+1)
	x := lo
	for i, w := range weights {
		pos[i] = x
		x += int(float64(hi-lo) * (w / total))
	}
	pos[len(weights)] = hi
	return pos
}

// Cell returns the rectangle for the specified cell.
func (g *GridLayout) Cell(col, row int) image.Rectangle {
	return image.Rect(g.colPos[col], g.rowPos[row], g.colPos[col+1], g.rowPos[row+1])
}
