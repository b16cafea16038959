//go:build fyne

package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Nikodemek/ballgame/core/engine"
)

// RunFynePanel opens a second window with Start/Stop buttons and the live
// score. It drives the game through the keypad like the status bar does.
func RunFynePanel(sb Scoreboard, keys *Keypad) {
	go func() {
		a := app.New()
		w := a.NewWindow("Ball The Game")

		score := widget.NewLabel("SCORE 0")
		startBtn := widget.NewButton("Start", func() { keys.Press(engine.KeyUp) })
		stopBtn := widget.NewButton("Stop", func() {
			if sb.Running() {
				keys.Press(engine.KeyCenter)
			}
		})

		go func() {
			for range time.Tick(250 * time.Millisecond) {
				score.SetText(fmt.Sprintf("SCORE %d  delay %d", sb.Score(), sb.Delay()))
			}
		}()

		w.SetContent(container.NewVBox(score, startBtn, stopBtn))
		w.ShowAndRun()
	}()
}
