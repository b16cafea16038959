package ui

import "image/color"

var (
	colBoard    = color.RGBA{20, 20, 30, 255}
	colStatusBG = color.RGBA{15, 15, 15, 255}

	colButtonBorder = color.RGBA{240, 240, 240, 255}
	colStartButton  = color.RGBA{40, 200, 40, 255}
	colStopButton   = color.RGBA{200, 40, 40, 255}

	colLEDOn     = color.RGBA{255, 60, 40, 255}
	colLEDOff    = color.RGBA{60, 20, 20, 255}
	colLEDBorder = color.RGBA{80, 80, 80, 255}
)
