package engine

import (
	"github.com/Nikodemek/ballgame/core/indicator"
	"github.com/Nikodemek/ballgame/core/tilt"
)

// Task is one periodic control loop. It terminates itself by returning.
type Task struct {
	Name     string
	Run      func()
	Stack    int
	Priority int
}

// TaskHandle identifies a spawned task.
type TaskHandle struct {
	ID       int
	Name     string
	Priority int
}

// Scheduler is the kernel the game runs on.
type Scheduler interface {
	Spawn(t Task) (TaskHandle, error)
	// Sleep suspends the calling task for the given number of kernel ticks.
	Sleep(ticks uint32)
}

// Color is an 8-bit RGB332 LCD color.
type Color uint8

const (
	Black Color = 0x00
	White Color = 0xff
)

// RGB expands the color to 8 bits per channel.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(int(c>>5&0x7) * 255 / 7), uint8(int(c>>2&0x7) * 255 / 7), uint8(int(c&0x3) * 255 / 3)
}

// Display is the bitmap LCD. Implementations serialize their own pixel writes;
// callers from different tasks may interleave.
type Display interface {
	SetColors(fg, bg Color)
	Clear()
	DrawRect(x, y, w, h int, c Color)
	GotoText(x, y int)
	PutText(s string)
}

type Key uint8

// Key codes match the joystick scanner of the board.
const (
	KeyNone   Key = 0x00
	KeyUp     Key = 0x01
	KeyRight  Key = 0x02
	KeyDown   Key = 0x04
	KeyLeft   Key = 0x08
	KeyCenter Key = 0x10
)

type Keypad interface {
	PollKey() Key
}

// Sounder plays short named cues. Playback must not block the caller.
type Sounder interface {
	Play(id string)
}

const (
	SoundStart = "start"
	SoundStop  = "stop"
	SoundCrash = "crash"
)

// Hardware bundles the board collaborators. Indicator and Sound may be nil.
type Hardware struct {
	Scheduler Scheduler
	ADC       tilt.ADC
	Display   Display
	Indicator indicator.Driver
	Sound     Sounder
}
