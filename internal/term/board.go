// Package term is the terminal board. The LCD is drawn with half-block cells,
// the LED bar runs down both sides and the arrow keys tilt the board.
package term

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Nikodemek/ballgame/core/engine"
	"github.com/Nikodemek/ballgame/core/indicator"
	"github.com/Nikodemek/ballgame/internal/config"
	game_log "github.com/Nikodemek/ballgame/internal/log"
)

const (
	// One half-block covers pixW x pixH LCD pixels, so a cell covers twice the height.
	pixW = 2
	pixH = 2

	ledCol  = 0
	lcdLeft = 2
	lcdTop  = 1

	tiltRest  = 512
	tiltSpan  = 240
	tiltDecay = 24

	frameRate = 30
)

type label struct {
	at     image.Point
	text   string
	fg, bg engine.Color
}

// Board implements engine.Display, tilt.ADC, indicator.Driver and
// engine.Keypad on one tcell screen.
type Board struct {
	screen tcell.Screen
	logger *game_log.Logger
	status func() string

	mu     sync.Mutex
	w, h   int
	pix    []engine.Color
	fg, bg engine.Color
	cursor image.Point
	labels []label

	fitted   bool
	leds     atomic.Uint32
	chX, chY uint8
	x, y     atomic.Int32
	key      atomic.Uint32
}

// New wraps an initialized screen. status, if set, is printed on the top line.
func New(screen tcell.Screen, cfg config.Config, status func() string, logger *game_log.Logger) *Board {
	if logger == nil {
		logger = game_log.Discard()
	}
	b := &Board{
		screen: screen,
		logger: logger,
		status: status,
		w:      cfg.Display.Width,
		h:      cfg.Display.Height,
		pix:    make([]engine.Color, cfg.Display.Width*cfg.Display.Height),
		fg:     engine.White,
		fitted: cfg.Indicator.Enabled,
		chX:    uint8(cfg.Tilt.ChannelX),
		chY:    uint8(cfg.Tilt.ChannelY),
	}
	b.x.Store(tiltRest)
	b.y.Store(tiltRest)
	return b
}

// Hardware bundles the board with a scheduler and an optional sounder.
func (b *Board) Hardware(s engine.Scheduler, snd engine.Sounder) engine.Hardware {
	return engine.Hardware{Scheduler: s, ADC: b, Display: b, Indicator: b, Sound: snd}
}

// Run renders frames and handles keys until ctx is done or the player quits
// with Esc, Ctrl-C or q.
func (b *Board) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 32)
	go b.pump(ctx, events)

	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				b.screen.Sync()
			case *tcell.EventKey:
				if b.handleKey(e) {
					b.logger.Infof("[TERM] quit requested")
					return
				}
			}
		case <-tick.C:
			b.settle()
			b.Render()
		}
	}
}

// pump forwards screen events until the screen is finalized or ctx is done.
func (b *Board) pump(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleKey reports whether the key asks to quit.
func (b *Board) handleKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		b.press(engine.KeyCenter)
	// A smaller sample than the reference tilts up (X) or right (Y).
	case tcell.KeyUp:
		b.x.Store(tiltRest - tiltSpan)
	case tcell.KeyDown:
		b.x.Store(tiltRest + tiltSpan)
	case tcell.KeyRight:
		b.y.Store(tiltRest - tiltSpan)
	case tcell.KeyLeft:
		b.y.Store(tiltRest + tiltSpan)
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			b.press(engine.KeyCenter)
		case 's', 'S':
			b.press(engine.KeyUp)
		}
	}
	return false
}

// settle eases both axes back to level. Terminals report presses but not
// releases, so a held arrow is the key repeat topping the tilt up.
func (b *Board) settle() {
	for _, v := range []*atomic.Int32{&b.x, &b.y} {
		cur := v.Load()
		switch {
		case cur < tiltRest:
			v.Store(min(cur+tiltDecay, tiltRest))
		case cur > tiltRest:
			v.Store(max(cur-tiltDecay, tiltRest))
		}
	}
}

func (b *Board) press(k engine.Key) { b.key.Store(uint32(k)) }

func (b *Board) PollKey() engine.Key {
	return engine.Key(b.key.Swap(uint32(engine.KeyNone)))
}

func (b *Board) ReadChannel(ch uint8) uint16 {
	switch ch {
	case b.chX:
		return uint16(b.x.Load())
	case b.chY:
		return uint16(b.y.Load())
	}
	return tiltRest
}

func (b *Board) Init() error {
	if !b.fitted {
		return indicator.ErrNoDriver
	}
	b.leds.Store(0)
	return nil
}

func (b *Board) SetPin(i int, on bool) {
	if i < 0 || i >= indicator.Pins {
		return
	}
	bit := uint32(1) << i
	for {
		old := b.leds.Load()
		next := old &^ bit
		if on {
			next = old | bit
		}
		if b.leds.CompareAndSwap(old, next) {
			return
		}
	}
}

func (b *Board) SetColors(fg, bg engine.Color) {
	b.mu.Lock()
	b.fg, b.bg = fg, bg
	b.mu.Unlock()
}

func (b *Board) Clear() {
	b.mu.Lock()
	for i := range b.pix {
		b.pix[i] = b.bg
	}
	b.labels = b.labels[:0]
	b.mu.Unlock()
}

// DrawRect fills a clipped rectangle and drops any text it covers.
func (b *Board) DrawRect(x, y, w, h int, c engine.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, b.w, b.h))
	if r.Empty() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			b.pix[py*b.w+px] = c
		}
	}
	kept := b.labels[:0]
	for _, l := range b.labels {
		if !labelRect(l).Overlaps(r) {
			kept = append(kept, l)
		}
	}
	b.labels = kept
}

func labelRect(l label) image.Rectangle {
	return image.Rect(l.at.X, l.at.Y, l.at.X+len(l.text)*pixW, l.at.Y+2*pixH)
}

func (b *Board) GotoText(x, y int) {
	b.mu.Lock()
	b.cursor = image.Pt(x, y)
	b.mu.Unlock()
}

// PutText places s at the cursor. One character takes one cell.
func (b *Board) PutText(s string) {
	b.mu.Lock()
	b.labels = append(b.labels, label{at: b.cursor, text: s, fg: b.fg, bg: b.bg})
	b.cursor.X += len(s) * pixW
	b.mu.Unlock()
}

// block is the brightest pixel of a half-block.
func (b *Board) block(col, half int) engine.Color {
	var out engine.Color
	for py := half * pixH; py < (half+1)*pixH && py < b.h; py++ {
		for px := col * pixW; px < (col+1)*pixW && px < b.w; px++ {
			out = max(out, b.pix[py*b.w+px])
		}
	}
	return out
}

func style(fg, bg engine.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

func tcellColor(c engine.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (b *Board) cols() int { return (b.w + pixW - 1) / pixW }

func (b *Board) rows() int { return (b.h + 2*pixH - 1) / (2 * pixH) }

// Render draws one frame.
func (b *Board) Render() {
	s := b.screen
	s.Clear()
	if b.status != nil {
		drawText(s, lcdLeft, 0, b.status(), tcell.StyleDefault.Bold(true))
	}

	b.mu.Lock()
	for row := 0; row < b.rows(); row++ {
		for col := 0; col < b.cols(); col++ {
			st := style(b.block(col, 2*row), b.block(col, 2*row+1))
			s.SetContent(lcdLeft+col, lcdTop+row, '▀', nil, st)
		}
	}
	for _, l := range b.labels {
		drawText(s, lcdLeft+l.at.X/pixW, lcdTop+l.at.Y/(2*pixH), l.text, style(l.fg, l.bg))
	}
	b.mu.Unlock()

	b.renderLEDs()
	s.Show()
}

func (b *Board) renderLEDs() {
	if !b.fitted {
		return
	}
	right := lcdLeft + b.cols() + 1
	per := max(b.rows()/indicator.Rows, 1)
	mask := b.leds.Load()
	for r := 0; r < indicator.Rows; r++ {
		for i := 0; i < per; i++ {
			y := lcdTop + r*per + i
			b.screen.SetContent(ledCol, y, ledRune(mask, r), nil, ledStyle(mask, r))
			b.screen.SetContent(right, y, ledRune(mask, indicator.Pins-1-r), nil, ledStyle(mask, indicator.Pins-1-r))
		}
	}
}

func ledRune(mask uint32, pin int) rune {
	if mask&(1<<pin) != 0 {
		return '●'
	}
	return '·'
}

func ledStyle(mask uint32, pin int) tcell.Style {
	if mask&(1<<pin) != 0 {
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}
