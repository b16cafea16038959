package audio

import (
	"math"
	"time"
)

// square is a fixed-pitch buzzer tone with a short linear release.
type square struct {
	i, n    int
	period  float64
	release int
	gain    float64
}

func newSquare(freq float64, dur time.Duration, gain float64) *square {
	n := samplesFor(dur)
	return &square{n: n, period: sampleRate / freq, release: n / 8, gain: gain}
}

func (s *square) Sample() (float64, bool) {
	if s.i >= s.n {
		return 0, true
	}
	v := s.gain
	if math.Mod(float64(s.i), s.period) >= s.period/2 {
		v = -v
	}
	if left := s.n - s.i; left < s.release {
		v *= float64(left) / float64(s.release)
	}
	s.i++
	return v, false
}

// sweep is a decaying sine bending from one pitch to another.
type sweep struct {
	i, n     int
	from, to float64
	phase    float64
	gain     float64
}

func newSweep(from, to float64, dur time.Duration, gain float64) *sweep {
	return &sweep{n: samplesFor(dur), from: from, to: to, gain: gain}
}

func (s *sweep) Sample() (float64, bool) {
	if s.i >= s.n {
		return 0, true
	}
	t := float64(s.i) / float64(s.n)
	freq := s.from + (s.to-s.from)*t
	s.phase += 2 * math.Pi * freq / sampleRate
	env := math.Exp(-5 * t)
	v := math.Sin(s.phase) * env * s.gain
	s.i++
	return v, false
}

func samplesFor(d time.Duration) int {
	return int(float64(sampleRate) * d.Seconds())
}
