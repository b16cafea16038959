package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate          = 44100
	bufferSizeBytes10ms = sampleRate / 100 * 2 // 10ms of 16-bit mono audio
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// mixer mixes multiple voices into a single PCM stream.
type mixer struct {
	mu     sync.Mutex
	voices []*voiceState
	pos    int
	player *oto.Player
}

type voiceState struct {
	start int
	v     Voice
}

func newMixer(c *oto.Context) *mixer {
	m := &mixer{}
	p := c.NewPlayer(m)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	m.player = p
	return m
}

// Schedule adds a voice to start after delaySamples have elapsed.
func (m *mixer) Schedule(v Voice, delaySamples int) {
	m.mu.Lock()
	m.voices = append(m.voices, &voiceState{start: m.pos + delaySamples, v: v})
	m.mu.Unlock()
}

// Pending reports how many voices have not finished yet.
func (m *mixer) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player. It never blocks on voices and
// writes silence when none are due.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			if m.pos < vs.start {
				continue
			}
			val, done := vs.v.Sample()
			sum += val
			if done {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		sum = min(max(sum, -1), 1)
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
		m.pos++
	}
	return len(p), nil
}
