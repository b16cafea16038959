package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	isKeyJustPressed     = inpututil.IsKeyJustPressed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	justPressed func(ebiten.Key) bool,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldJust := isKeyJustPressed
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	isKeyJustPressed = justPressed
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		isKeyJustPressed = oldJust
	}
}
