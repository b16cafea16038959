package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawRect fills or outlines r. Tests may replace it to capture draw calls.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	x, y, w, h := float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
	if filled {
		vector.DrawFilledRect(dst, x, y, w, h, c, false)
		return
	}
	vector.StrokeRect(dst, x, y, w, h, 1, c, false)
}

// drawButton fills r and outlines it; a pressed button is drawn at half
// brightness.
var drawButton = func(dst *ebiten.Image, r image.Rectangle, fill, border color.Color, pressed bool) {
	if c, ok := fill.(color.RGBA); ok && pressed {
		fill = color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
	}
	drawRect(dst, r, fill, true)
	drawRect(dst, r, border, false)
}
