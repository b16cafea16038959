//go:build !fyne

package ui

// RunFynePanel is a no-op unless built with the fyne tag.
func RunFynePanel(sb Scoreboard, keys *Keypad) {}
