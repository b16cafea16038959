package model

import "github.com/Nikodemek/ballgame/internal/utils"

// Direction values match the joystick key codes of the board.
type Direction uint8

const (
	None  Direction = 0x00
	Up    Direction = 0x01
	Right Direction = 0x02
	Down  Direction = 0x04
	Left  Direction = 0x08
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// Field is the playable area in display pixels.
type Field struct {
	Width  int
	Height int
}

// Ball is drawn as a Radius x Radius square anchored at X,Y.
type Ball struct {
	X      int
	Y      int
	Speed  int
	Radius int
}

// Step returns the ball moved one speed step in dir, clamped so the whole square
// stays on the field. ok is false for None.
func (b Ball) Step(dir Direction, f Field) (next Ball, ok bool) {
	next = b
	maxX := f.Width - b.Radius - 1
	maxY := f.Height - b.Radius - 1
	switch dir {
	case Up:
		next.Y = utils.Clamp(b.Y-b.Speed, 0, maxY)
	case Down:
		next.Y = utils.Clamp(b.Y+b.Speed, 0, maxY)
	case Left:
		next.X = utils.Clamp(b.X-b.Speed, 0, maxX)
	case Right:
		next.X = utils.Clamp(b.X+b.Speed, 0, maxX)
	default:
		return b, false
	}
	return next, true
}

func (b Ball) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Radius, H: b.Radius}
}
