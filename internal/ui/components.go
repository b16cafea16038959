package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonStyle describes rectangular button visuals.
type ButtonStyle struct {
	Fill   color.Color
	Border color.Color
}

// Draw renders the button rectangle using the global drawButton primitive.
// A hovered button is lit up a little.
func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool) {
	fill := s.Fill
	if hovered && !pressed {
		fill = lighten(fill)
	}
	drawButton(dst, r, fill, s.Border, pressed)
}

// lighten moves c a quarter of the way to white.
func lighten(c color.Color) color.Color {
	rgba, ok := c.(color.RGBA)
	if !ok {
		return c
	}
	up := func(v uint8) uint8 { return v + (255-v)/4 }
	return color.RGBA{up(rgba.R), up(rgba.G), up(rgba.B), rgba.A}
}

var (
	StartButtonStyle = ButtonStyle{Fill: colStartButton, Border: colButtonBorder}
	StopButtonStyle  = ButtonStyle{Fill: colStopButton, Border: colButtonBorder}
)

// LEDStyle draws one indicator LED.
type LEDStyle struct {
	On     color.Color
	Off    color.Color
	Border color.Color
}

func (s LEDStyle) Draw(dst *ebiten.Image, r image.Rectangle, lit bool) {
	fill := s.Off
	if lit {
		fill = s.On
	}
	drawRect(dst, r, fill, true)
	drawRect(dst, r, s.Border, false)
}

var DefaultLEDStyle = LEDStyle{On: colLEDOn, Off: colLEDOff, Border: colLEDBorder}
