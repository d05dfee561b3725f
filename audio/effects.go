package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave maps an oscillator phase in [0,1) to a sample in [-1,1]
type Wave func(phase float64) float64

var (
	Sine   Wave = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	Square Wave = func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	}
	Saw   Wave = func(p float64) float64 { return 2*p - 1 }
	Noise Wave = func(float64) float64 { return rand.Float64()*2 - 1 }
)

// sweep plays wave for a fixed number of samples, moving its pitch linearly from
// one frequency to another
type sweep struct {
	wave     Wave
	from, to float64
	rate     float64
	phase    float64
	i, n     int
}

// Tone is a fixed-pitch wave lasting d
func Tone(wave Wave, hz float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return Sweep(wave, hz, hz, d, rate)
}

// Sweep glides from one pitch to another over d
func Sweep(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{wave: wave, from: from, to: to, rate: float64(rate), n: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	k := 0
	for ; k < len(samples) && s.i < s.n; k++ {
		v := s.wave(s.phase)
		samples[k] = [2]float64{v, v}
		hz := s.from + (s.to-s.from)*float64(s.i)/float64(s.n)
		_, s.phase = math.Modf(s.phase + hz/s.rate)
		s.i++
	}
	return k, k > 0
}

func (s *sweep) Err() error { return nil }

// gainAt is the linear attack/release multiplier at sample pos of a total-sample
// sound; 0 past the end
func gainAt(pos, attack, release, total int) float64 {
	if pos >= total {
		return 0
	}
	g := 1.0
	if attack > 0 && pos < attack {
		g = float64(pos) / float64(attack)
	}
	if tail := total - pos; release > 0 && tail <= release {
		g = min(g, float64(tail)/float64(release))
	}
	return g
}

// Shape cuts s to d and fades it in over attack and out over release
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, a, r := rate.N(d), rate.N(attack), rate.N(release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		if rest := total - pos; len(samples) > rest {
			samples = samples[:rest]
		}
		n, ok := s.Stream(samples)
		for k := range samples[:n] {
			g := gainAt(pos, a, r, total)
			samples[k][0] *= g
			samples[k][1] *= g
			pos++
		}
		return n, ok || n > 0
	})
}

// scaled multiplies s by a linear amplitude; 0 or below mutes it
func scaled(s beep.Streamer, amp float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2, Silent: amp <= 0}
	if !v.Silent {
		v.Volume = math.Log2(amp)
	}
	return v
}

// decibelVolume converts a gain in dB to Base 10 effects.Volume settings, where
// amplitude is 10^(db/20); at or below floor the stream is muted
func decibelVolume(db, floor float64) (volume float64, silent bool) {
	if db <= floor {
		return floor / 20, true
	}
	return db / 20, false
}
