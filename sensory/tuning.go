package sensory

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/sense"
)

// Cone is a vision cone configuration
type Cone struct {
	InnerAngle float64 `mapstructure:"inner_angle" yaml:"inner_angle"`
	OuterAngle float64 `mapstructure:"outer_angle" yaml:"outer_angle"`
	Radius     float64 `mapstructure:"radius" yaml:"radius"`
	Intensity  float64 `mapstructure:"intensity" yaml:"intensity"`
}

// ConeTable holds one cone per effective state, indexed by sense.State
type ConeTable [3]Cone

// GainTable holds one gain in dB per effective state, indexed by sense.State
type GainTable [3]float64

// Tuning is the configurable behavior of the mechanic
type Tuning struct {
	RollDuration   time.Duration
	FlipInterval   time.Duration
	BadDieInterval time.Duration
	SpinTurns      float64
	CueVolume      float64
	Vision         ConeTable
	Hearing        GainTable
}

// DefaultTuning returns the stock tuning
func DefaultTuning() Tuning {
	var vision ConeTable
	vision[sense.Negative] = Cone{
		InnerAngle: parameter.VisionNegativeInner,
		OuterAngle: parameter.VisionNegativeOuter,
		Radius:     parameter.VisionNegativeRadius,
		Intensity:  parameter.VisionNegativeIntensity,
	}
	vision[sense.Neutral] = Cone{
		InnerAngle: parameter.VisionNeutralInner,
		OuterAngle: parameter.VisionNeutralOuter,
		Radius:     parameter.VisionNeutralRadius,
		Intensity:  parameter.VisionNeutralIntensity,
	}
	vision[sense.Positive] = Cone{
		InnerAngle: parameter.VisionPositiveInner,
		OuterAngle: parameter.VisionPositiveOuter,
		Radius:     parameter.VisionPositiveRadius,
		Intensity:  parameter.VisionPositiveIntensity,
	}

	var hearing GainTable
	hearing[sense.Negative] = parameter.HearingNegativeGain
	hearing[sense.Neutral] = parameter.HearingNeutralGain
	hearing[sense.Positive] = parameter.HearingPositiveGain

	return Tuning{
		RollDuration:   parameter.RollDuration,
		FlipInterval:   parameter.FaceFlipInterval,
		BadDieInterval: parameter.BadDieInterval,
		SpinTurns:      parameter.SpinTurns,
		CueVolume:      parameter.CueVolume,
		Vision:         vision,
		Hearing:        hearing,
	}
}

// normalized replaces non-positive timings with defaults
func (t Tuning) normalized() Tuning {
	def := DefaultTuning()
	if t.RollDuration <= 0 {
		t.RollDuration = def.RollDuration
	}
	if t.FlipInterval <= 0 {
		t.FlipInterval = def.FlipInterval
	}
	if t.BadDieInterval <= 0 {
		t.BadDieInterval = def.BadDieInterval
	}
	return t
}

// Validate checks timings and that both tables are strictly ordered
// from Negative to Positive
func (t Tuning) Validate() error {
	var errs []error
	if t.RollDuration <= 0 {
		errs = append(errs, fmt.Errorf("roll duration must be positive, got %s", t.RollDuration))
	}
	if t.FlipInterval <= 0 {
		errs = append(errs, fmt.Errorf("flip interval must be positive, got %s", t.FlipInterval))
	}
	if t.BadDieInterval <= 0 {
		errs = append(errs, fmt.Errorf("bad die interval must be positive, got %s", t.BadDieInterval))
	}
	if t.SpinTurns < 0 {
		errs = append(errs, fmt.Errorf("spin turns must not be negative, got %g", t.SpinTurns))
	}
	if t.CueVolume < 0 || t.CueVolume > 1 {
		errs = append(errs, fmt.Errorf("cue volume must be within [0,1], got %g", t.CueVolume))
	}

	for i := sense.Negative; i < sense.Positive; i++ {
		lo, hi := t.Vision[i], t.Vision[i+1]
		if lo.InnerAngle >= hi.InnerAngle || lo.OuterAngle >= hi.OuterAngle ||
			lo.Radius >= hi.Radius || lo.Intensity >= hi.Intensity {
			errs = append(errs, fmt.Errorf("vision cone %s must be narrower and dimmer than %s", i, i+1))
		}
		if t.Hearing[i] >= t.Hearing[i+1] {
			errs = append(errs, fmt.Errorf("hearing gain %s (%gdB) must be below %s (%gdB)", i, t.Hearing[i], i+1, t.Hearing[i+1]))
		}
	}
	for st, c := range t.Vision {
		if c.InnerAngle > c.OuterAngle {
			errs = append(errs, fmt.Errorf("vision cone %s inner angle exceeds outer angle", sense.State(st)))
		}
	}

	return errors.Join(errs...)
}
