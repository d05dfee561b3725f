package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/parameter"
)

// CueStreamer builds a finite one-shot streamer for cue at volume (0.0-1.0)
// Returns nil for the loop cue and unknown cues
func CueStreamer(cue core.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case core.CueRolling:
		s = rattleSound(rate)
	case core.CueFall:
		s = fallSound(rate)
	case core.CueGoodRolled:
		s = chimeSound(rate)
	case core.CueBadRolled:
		s = droneSound(rate)
	default:
		return nil
	}
	return scaled(s, volume)
}

// LoopStreamer builds an endless streamer for a looping cue, nil if cue does not loop
func LoopStreamer(cue core.Cue, rate beep.SampleRate) beep.Streamer {
	if cue != core.CueSpeakLoop {
		return nil
	}
	return NewMurmurGenerator(rate)
}

// rattleSound is noise chopped into short clicks
func rattleSound(rate beep.SampleRate) beep.Streamer {
	noise := Tone(Noise, 0, parameter.CueRollingDuration, rate)
	clicks := &gate{streamer: noise, rate: rate, hz: parameter.CueRollingClickHz}
	return Shape(clicks, parameter.CueRollingDuration, parameter.CueRollingAttack, parameter.CueRollingRelease, rate)
}

// fallSound is a descending saw sweep
func fallSound(rate beep.SampleRate) beep.Streamer {
	glide := Sweep(Saw, parameter.CueFallStartHz, parameter.CueFallEndHz, parameter.CueFallDuration, rate)
	return Shape(glide, parameter.CueFallDuration, parameter.CueFallAttack, parameter.CueFallRelease, rate)
}

// chimeSound is two rising sine notes
func chimeSound(rate beep.SampleRate) beep.Streamer {
	n1 := sineNote(rate, parameter.CueGoodNote1Hz, parameter.CueGoodNote1Duration)
	n1 = Shape(n1, parameter.CueGoodNote1Duration, parameter.CueGoodAttack, parameter.CueGoodNote1Duration/2, rate)

	n2 := sineNote(rate, parameter.CueGoodNote2Hz, parameter.CueGoodNote2Duration)
	n2 = Shape(n2, parameter.CueGoodNote2Duration, parameter.CueGoodAttack, parameter.CueGoodRelease, rate)

	return beep.Seq(n1, n2)
}

// droneSound is a low square tone with an octave underneath
func droneSound(rate beep.SampleRate) beep.Streamer {
	fund := Tone(Square, parameter.CueBadHz, parameter.CueBadDuration, rate)
	sub := Tone(Sine, parameter.CueBadHz/2, parameter.CueBadDuration, rate)
	mixed := beep.Mix(scaled(fund, 0.5), scaled(sub, 0.5))
	return Shape(mixed, parameter.CueBadDuration, parameter.CueBadAttack, parameter.CueBadRelease, rate)
}

// sineNote is a fixed-length sine tone
// Tones above Nyquist fall back to Tone
func sineNote(rate beep.SampleRate, hz float64, d time.Duration) beep.Streamer {
	tone, err := generators.SineTone(rate, hz)
	if err != nil {
		return Tone(Sine, hz, d, rate)
	}
	return beep.Take(rate.N(d), tone)
}

// gate chops a stream into on/off pulses at hz
type gate struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	hz       float64
	pos      int
}

func (g *gate) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	period := float64(g.rate) / g.hz
	for i := 0; i < n; i++ {
		phase := math.Mod(float64(g.pos), period) / period
		if phase > 0.3 {
			samples[i][0] = 0
			samples[i][1] = 0
		}
		g.pos++
	}
	return n, ok
}

func (g *gate) Err() error { return g.streamer.Err() }

// MurmurGenerator generates an endless voice-like murmur: a saw carrier
// amplitude-modulated at syllable rate
type MurmurGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewMurmurGenerator creates a murmur generator
func NewMurmurGenerator(sr beep.SampleRate) *MurmurGenerator {
	return &MurmurGenerator{sr: sr}
}

func (g *MurmurGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Carrier wobbles around the base pitch like intonation
		freq := parameter.CueSpeakCarrierHz * (1 + 0.1*math.Sin(2*math.Pi*0.7*t))
		carrier := 2.0 * (math.Mod(freq*t, 1.0) - 0.5)

		syllable := 0.5 + 0.5*math.Sin(2*math.Pi*parameter.CueSpeakSyllableHz*t)
		sample := parameter.CueSpeakLevel * syllable * syllable * carrier

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MurmurGenerator) Err() error {
	return nil
}
