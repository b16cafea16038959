package ui

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Nikodemek/ballgame/core/engine"
)

// RGB expands an RGB332 LCD color.
func RGB(c engine.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// LCD is the board display kept in memory. The game tasks draw into it from
// their own goroutines and the ebiten loop copies it out once per frame.
type LCD struct {
	mu      sync.Mutex
	img     *image.RGBA
	fg, bg  engine.Color
	dot     image.Point
	face    font.Face
	version uint64
}

func NewLCD(w, h int) *LCD {
	l := &LCD{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		fg:   engine.White,
		face: basicfont.Face7x13,
	}
	l.Clear()
	return l
}

func (l *LCD) Bounds() image.Rectangle { return l.img.Bounds() }

func (l *LCD) SetColors(fg, bg engine.Color) {
	l.mu.Lock()
	l.fg, l.bg = fg, bg
	l.mu.Unlock()
}

// Clear fills the whole screen with the background color.
func (l *LCD) Clear() {
	l.mu.Lock()
	draw.Draw(l.img, l.img.Bounds(), image.NewUniform(RGB(l.bg)), image.Point{}, draw.Src)
	l.version++
	l.mu.Unlock()
}

// DrawRect fills a w x h rectangle, clipped to the screen.
func (l *LCD) DrawRect(x, y, w, h int, c engine.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(l.img.Bounds())
	if r.Empty() {
		return
	}
	l.mu.Lock()
	draw.Draw(l.img, r, image.NewUniform(RGB(c)), image.Point{}, draw.Src)
	l.version++
	l.mu.Unlock()
}

// GotoText moves the text cursor to the top-left corner of the next glyph.
func (l *LCD) GotoText(x, y int) {
	l.mu.Lock()
	l.dot = image.Pt(x, y)
	l.mu.Unlock()
}

// PutText draws s on a background-colored box and advances the cursor.
func (l *LCD) PutText(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := l.face.Metrics()
	width := font.MeasureString(l.face, s).Ceil()
	box := image.Rect(l.dot.X, l.dot.Y, l.dot.X+width, l.dot.Y+m.Height.Ceil())
	draw.Draw(l.img, box.Intersect(l.img.Bounds()), image.NewUniform(RGB(l.bg)), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  l.img,
		Src:  image.NewUniform(RGB(l.fg)),
		Face: l.face,
		Dot:  fixed.P(l.dot.X, l.dot.Y+m.Ascent.Ceil()),
	}
	d.DrawString(s)
	l.dot.X += width
	l.version++
}

// At returns the color of one pixel.
func (l *LCD) At(x, y int) color.RGBA {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.img.RGBAAt(x, y)
}

// CopyPixels copies the frame into dst if it changed since version and returns
// the new version.
func (l *LCD) CopyPixels(dst []byte, version uint64) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if version == l.version {
		return version, false
	}
	copy(dst, l.img.Pix)
	return l.version, true
}
