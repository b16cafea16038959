// Package audio plays the board's buzzer cues through oto.
package audio

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/Nikodemek/ballgame/core/engine"
	game_log "github.com/Nikodemek/ballgame/internal/log"
)

// oto allows one context per process.
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
)

func sharedContext() (*oto.Context, error) {
	ctxOnce.Do(func() {
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if ctxErr == nil {
			<-ready
		}
	})
	return ctx, ctxErr
}

type note struct {
	freq float64
	dur  time.Duration
}

// part is one voice of a cue, offset from the start of the cue.
type part struct {
	at    time.Duration
	voice func(gain float64) Voice
}

func melody(notes ...note) []part {
	var parts []part
	var at time.Duration
	for _, n := range notes {
		parts = append(parts, part{at: at, voice: func(g float64) Voice { return newSquare(n.freq, n.dur, g) }})
		at += n.dur
	}
	return parts
}

var cues = map[string][]part{
	engine.SoundStart: melody(note{880, 80 * time.Millisecond}, note{1320, 120 * time.Millisecond}),
	engine.SoundStop:  melody(note{660, 100 * time.Millisecond}, note{440, 160 * time.Millisecond}),
	engine.SoundCrash: {{voice: func(g float64) Voice { return newSweep(300, 60, 250*time.Millisecond, g) }}},
}

// Buzzer implements engine.Sounder. The audio device is opened on the first
// cue; if that fails every cue is dropped.
type Buzzer struct {
	once   sync.Once
	mix    *mixer
	gain   float64
	logger *game_log.Logger
}

func NewBuzzer(volume float64, logger *game_log.Logger) *Buzzer {
	if logger == nil {
		logger = game_log.Discard()
	}
	return &Buzzer{gain: min(max(volume, 0), 1), logger: logger}
}

func (b *Buzzer) open() {
	c, err := sharedContext()
	if err != nil {
		b.logger.Warnf("[AUDIO] no audio device, cues muted: %v", err)
		return
	}
	b.mix = newMixer(c)
}

// Play queues the cue and returns at once. Unknown ids are ignored.
func (b *Buzzer) Play(id string) {
	parts, ok := cues[id]
	if !ok {
		b.logger.Debugf("[AUDIO] unknown cue %q", id)
		return
	}
	b.once.Do(b.open)
	if b.mix == nil {
		return
	}
	if b.mix.player != nil {
		b.mix.player.Play()
	}
	for _, p := range parts {
		b.mix.Schedule(p.voice(b.gain), samplesFor(p.at))
	}
}
