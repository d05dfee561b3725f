package sensory

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/status"
)

func newTestDispatcher(h *harness, reg *status.Registry) (*Dispatcher, *Deps) {
	deps := h.deps()
	return NewDispatcher(DefaultTuning(), &deps, reg, slog.New(slog.DiscardHandler)), &deps
}

func TestDispatchIdempotent(t *testing.T) {
	h := newHarness("a", "b")
	reg := status.NewRegistry()
	d, _ := newTestDispatcher(h, reg)

	v := sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Sight})
	d.Apply(v)
	cone, gain := h.vision.cone, h.audio.gain
	d.Apply(v)

	assert.Equal(t, cone, h.vision.cone)
	assert.Equal(t, gain, h.audio.gain)
	assert.Equal(t, 2, h.vision.sets, "sinks reapplied without diffing")
	assert.Equal(t, 1, h.audio.loops[core.CueSpeakLoop], "ambient loop attached once")
	assert.True(t, d.LoopAttached())
	assert.True(t, reg.Flags.Get("sink.speak_loop").Load())
	for _, a := range h.agents.list {
		assert.Equal(t, core.BehaviorRepel, a.behavior)
	}
}

func TestDispatchDetachesLoop(t *testing.T) {
	h := newHarness()
	d, _ := newTestDispatcher(h, status.NewRegistry())

	d.Apply(sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Hearing}))
	d.Apply(sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Speech}))
	assert.False(t, d.LoopAttached())
	assert.Equal(t, 0, h.audio.loops[core.CueSpeakLoop])

	d.Apply(sense.Derive(sense.Outcome{Good: sense.Sight, Bad: sense.Hearing}))
	assert.Equal(t, []string{"loop:start", "loop:stop"}, filter(h.rec.calls, "loop:"))

	d.Apply(sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Hearing}))
	assert.Equal(t, 1, h.audio.loops[core.CueSpeakLoop], "reattached on re-entry")
}

func TestDispatchLoopRetriedWithoutDevice(t *testing.T) {
	h := newHarness()
	h.audio.noDev = true
	d, _ := newTestDispatcher(h, status.NewRegistry())

	v := sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Hearing})
	d.Apply(v)
	assert.False(t, d.LoopAttached())

	h.audio.noDev = false
	d.Apply(v)
	assert.True(t, d.LoopAttached())
}

func TestDispatchTables(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		outcome  sense.Outcome
		sight    sense.State
		hearing  sense.State
		behavior core.Behavior
	}{
		{sense.Outcome{Good: sense.Sight, Bad: sense.Hearing}, sense.Positive, sense.Negative, core.BehaviorPatrol},
		{sense.Outcome{Good: sense.Hearing, Bad: sense.Speech}, sense.Neutral, sense.Positive, core.BehaviorChase},
		{sense.Outcome{Good: sense.Speech, Bad: sense.Sight}, sense.Negative, sense.Neutral, core.BehaviorRepel},
	}
	for _, tt := range tests {
		h := newHarness("a")
		d, _ := newTestDispatcher(h, status.NewRegistry())
		d.Apply(sense.Derive(tt.outcome))

		assert.Equal(t, tuning.Vision[tt.sight], h.vision.cone)
		assert.Equal(t, tuning.Hearing[tt.hearing], h.audio.gain)
		assert.Equal(t, tt.behavior, h.agents.list[0].behavior)
	}
}

func TestDispatchSkipsMissingSinks(t *testing.T) {
	reg := status.NewRegistry()
	d := NewDispatcher(DefaultTuning(), &Deps{}, reg, slog.New(slog.DiscardHandler))
	assert.NotPanics(t, func() {
		d.Apply(sense.Derive(sense.Outcome{Good: sense.Speech, Bad: sense.Sight}))
	})
	assert.Equal(t, "repel", reg.Labels.Get("sink.behavior").Value())
	assert.InDelta(t, DefaultTuning().Vision[sense.Negative].Radius, reg.Gauges.Get("sink.cone_radius").Value(), 1e-9)
}

func TestBehaviorFor(t *testing.T) {
	assert.Equal(t, core.BehaviorChase, BehaviorFor(sense.Negative))
	assert.Equal(t, core.BehaviorPatrol, BehaviorFor(sense.Neutral))
	assert.Equal(t, core.BehaviorRepel, BehaviorFor(sense.Positive))
}

func filter(calls []string, prefix string) []string {
	var out []string
	for _, c := range calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}
