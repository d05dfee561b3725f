package sensory

import (
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/status"
)

// Dispatcher applies a state vector to the vision, gain and behavior sinks
// Every sink is reapplied in full on each call; nothing is diffed except
// the Speech loop, which is attached at most once
type Dispatcher struct {
	vision  ConeTable
	hearing GainTable
	deps    *Deps
	logger  *slog.Logger

	loopAttached bool

	statGain     *status.Gauge
	statRadius   *status.Gauge
	statBehavior *status.Label
	statLoop     *atomic.Bool
}

// NewDispatcher creates a dispatcher over deps
func NewDispatcher(tuning Tuning, deps *Deps, reg *status.Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		vision:       tuning.Vision,
		hearing:      tuning.Hearing,
		deps:         deps,
		logger:       logger,
		statGain:     reg.Gauges.Get("sink.gain_db"),
		statRadius:   reg.Gauges.Get("sink.cone_radius"),
		statBehavior: reg.Labels.Get("sink.behavior"),
		statLoop:     reg.Flags.Get("sink.speak_loop"),
	}
}

// Apply pushes v to every attached sink
func (d *Dispatcher) Apply(v sense.Vector) {
	d.applySight(v.Get(sense.Sight))
	d.applyHearing(v.Get(sense.Hearing))
	d.applySpeech(v.Get(sense.Speech))
}

// LoopAttached reports whether the Speech loop is currently attached
func (d *Dispatcher) LoopAttached() bool {
	return d.loopAttached
}

func (d *Dispatcher) applySight(st sense.State) {
	cone := d.vision[st]
	d.statRadius.Set(cone.Radius)
	if d.deps.Vision == nil {
		return
	}
	d.deps.Vision.SetCone(cone)
}

func (d *Dispatcher) applyHearing(st sense.State) {
	gain := d.hearing[st]
	d.statGain.Set(gain)
	if d.deps.Gain == nil {
		return
	}
	d.deps.Gain.SetGain(gain)
	d.logger.Debug("master gain set", "hearing", st.String(), "db", gain)
}

func (d *Dispatcher) applySpeech(st sense.State) {
	mode := BehaviorFor(st)
	d.statBehavior.Set(mode.String())

	if d.deps.Agents != nil {
		for _, a := range d.deps.Agents.Agents() {
			if a == nil || !a.Alive() {
				continue
			}
			a.SetBehavior(mode)
		}
	}

	if st == sense.Positive {
		if !d.loopAttached && d.deps.Loops != nil {
			d.loopAttached = d.deps.Loops.StartLoop(core.CueSpeakLoop)
		}
	} else if d.loopAttached {
		d.deps.Loops.StopLoop(core.CueSpeakLoop)
		d.loopAttached = false
	}
	d.statLoop.Store(d.loopAttached)
}

// BehaviorFor maps the Speech state to the agent behavior mode
func BehaviorFor(st sense.State) core.Behavior {
	switch st {
	case sense.Negative:
		return core.BehaviorChase
	case sense.Positive:
		return core.BehaviorRepel
	default:
		return core.BehaviorPatrol
	}
}
