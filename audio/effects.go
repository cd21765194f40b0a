package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Voice describes one synthesized sound
// Frequency glides linearly from Freq to EndFreq over Duration, EndFreq 0 holds Freq
type Voice struct {
	Wave     WaveType
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// tone renders a Voice with an attack/release envelope
type tone struct {
	voice   Voice
	rate    beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
	phase   float64
	seed    uint32
}

// NewTone returns a finite streamer for v
func NewTone(v Voice, rate beep.SampleRate) beep.Streamer {
	return &tone{
		voice:   v,
		rate:    rate,
		total:   rate.N(v.Duration),
		attack:  rate.N(v.Attack),
		release: rate.N(v.Release),
		seed:    uint32(v.Freq) | 1,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		val := t.voice.Gain * t.wave() * t.envelope()
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq() / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) freq() float64 {
	if t.voice.EndFreq == 0 || t.total == 0 {
		return t.voice.Freq
	}
	progress := float64(t.pos) / float64(t.total)
	return t.voice.Freq + (t.voice.EndFreq-t.voice.Freq)*progress
}

func (t *tone) wave() float64 {
	switch t.voice.Wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (t.phase - 0.5)
	case WaveNoise:
		// LCG keeps noise reproducible per voice
		t.seed = t.seed*1664525 + 1013904223
		return float64(t.seed)/float64(math.MaxUint32)*2 - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
		return float64(remaining) / float64(t.release)
	}
	return 1
}

// newVolume applies linear gain, zero or below is silent
// math.Log2(0) is -Inf, so silence is flagged instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// delayed prefixes s with silence
func delayed(s beep.Streamer, delay time.Duration, rate beep.SampleRate) beep.Streamer {
	if delay <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(delay)), s)
}
