package sensory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/sense-dice/sense"
)

func TestDefaultTuningValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestTuningValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
		want   string
	}{
		{"roll duration", func(t *Tuning) { t.RollDuration = 0 }, "roll duration"},
		{"flip interval", func(t *Tuning) { t.FlipInterval = -time.Second }, "flip interval"},
		{"bad interval", func(t *Tuning) { t.BadDieInterval = 0 }, "bad die interval"},
		{"spin", func(t *Tuning) { t.SpinTurns = -1 }, "spin turns"},
		{"volume", func(t *Tuning) { t.CueVolume = 1.5 }, "cue volume"},
		{"vision order", func(t *Tuning) {
			t.Vision[sense.Negative], t.Vision[sense.Positive] = t.Vision[sense.Positive], t.Vision[sense.Negative]
		}, "vision cone"},
		{"hearing order", func(t *Tuning) { t.Hearing[sense.Neutral] = 0 }, "hearing gain"},
		{"inner angle", func(t *Tuning) { t.Vision[sense.Positive].InnerAngle = 200 }, "inner angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			err := tuning.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTuningNormalized(t *testing.T) {
	n := Tuning{SpinTurns: 1}.normalized()
	def := DefaultTuning()
	assert.Equal(t, def.RollDuration, n.RollDuration)
	assert.Equal(t, def.FlipInterval, n.FlipInterval)
	assert.Equal(t, def.BadDieInterval, n.BadDieInterval)
	assert.Equal(t, 1.0, n.SpinTurns)
}

func TestPhaseTransitions(t *testing.T) {
	assert.True(t, CanTransition(PhaseIdle, PhaseRollInProgress))
	assert.True(t, CanTransition(PhaseRollInProgress, PhaseIdle))
	assert.False(t, CanTransition(PhaseIdle, PhaseIdle))
	assert.False(t, CanTransition(PhaseRollInProgress, PhaseRollInProgress))
	assert.Equal(t, "rolling", PhaseRollInProgress.String())
}
