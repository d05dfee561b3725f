// Package sensory implements the dual-die roll engine: the scheduler,
// the timed roll sequence, effect dispatch and change notification
package sensory

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/status"
)

// TracerName is the instrumentation scope of roll spans
const TracerName = "github.com/lixenwraith/sense-dice/sensory"

// DiceChanged is published once per commit, after sinks are applied
type DiceChanged struct {
	Good   sense.Sense
	Bad    sense.Sense
	Die    sense.Die // Die that was redrawn
	Silent bool      // Startup commit without animation
}

// System owns the dice, the roll scheduler and the effect sinks
//
// Main-loop exclusive: Update, Start, RollGoodDie, Subscribe and the state
// queries must be called from the goroutine driving the game loop.
// IsRolling is atomic and safe from any goroutine
type System struct {
	tuning     Tuning
	deps       Deps
	rng        sense.RandomSource
	logger     *slog.Logger
	tracer     trace.Tracer
	dispatcher *Dispatcher
	changed    *event.Channel[DiceChanged]

	phase   Phase
	rolling atomic.Bool
	started bool

	now         time.Duration // Game time accumulated from Update
	lastBadRoll time.Duration // Game time of the last bad roll request

	outcome sense.Outcome
	vector  sense.Vector
	session rollSession

	statGoodRolls *atomic.Int64
	statBadRolls  *atomic.Int64
	statSilent    *atomic.Int64
	statDropped   *atomic.Int64
	statRolling   *atomic.Bool
	statGoodFace  *status.Label
	statBadFace   *status.Label
	statStates    [sense.Count]*status.Label
}

// Option configures a System
type Option func(*options)

type options struct {
	rng    sense.RandomSource
	logger *slog.Logger
	reg    *status.Registry
	tracer trace.Tracer
}

// WithRandom sets the die and spin random source
func WithRandom(src sense.RandomSource) Option {
	return func(o *options) { o.rng = src }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStatus publishes metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithTracer overrides the global tracer provider
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// New creates a System; it is idle with a neutral vector until Start
func New(tuning Tuning, deps Deps, opts ...Option) *System {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.reg == nil {
		o.reg = status.NewRegistry()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(TracerName)
	}

	tuning = tuning.normalized()
	s := &System{
		tuning:  tuning,
		deps:    deps,
		rng:     o.rng,
		logger:  o.logger,
		tracer:  o.tracer,
		changed: event.NewChannel[DiceChanged](),
		phase:   PhaseIdle,
		vector:  sense.NewVector(),

		statGoodRolls: o.reg.Counters.Get("sensory.rolls.good"),
		statBadRolls:  o.reg.Counters.Get("sensory.rolls.bad"),
		statSilent:    o.reg.Counters.Get("sensory.rolls.silent"),
		statDropped:   o.reg.Counters.Get("sensory.rolls.dropped"),
		statRolling:   o.reg.Flags.Get("sensory.rolling"),
		statGoodFace:  o.reg.Labels.Get("sensory.die.good"),
		statBadFace:   o.reg.Labels.Get("sensory.die.bad"),
	}
	for _, sn := range sense.Senses {
		s.statStates[sn] = o.reg.Labels.Get("sensory.state." + sn.String())
	}
	s.dispatcher = NewDispatcher(tuning, &s.deps, o.reg, o.logger)

	if deps.Faces != nil {
		s.changed.Subscribe(func(dc DiceChanged) {
			deps.Faces.ShowFaces(dc.Good, dc.Bad)
		})
	}
	return s
}

// Start rolls both dice once silently, bad die first, establishing the
// initial outcome. Later calls are no-ops
func (s *System) Start() {
	if s.started {
		return
	}
	s.started = true
	s.lastBadRoll = s.now

	s.rollSilent(sense.BadDie)
	s.rollSilent(sense.GoodDie)
	s.logger.Info("dice initialized",
		"good", s.outcome.Good.String(),
		"bad", s.outcome.Bad.String(),
	)
}

// Update advances game time by dt and drives the scheduler
// dt comes from the pausable clock, so a paused game passes zero
func (s *System) Update(dt time.Duration) {
	s.Start()
	if dt > 0 {
		s.now += dt
	}

	switch s.phase {
	case PhaseIdle:
		if s.now >= s.lastBadRoll+s.tuning.BadDieInterval {
			s.lastBadRoll = s.now
			s.beginRoll(sense.BadDie)
		}
	case PhaseRollInProgress:
		s.advance()
	}
}

// RollGoodDie requests an animated good die roll
// Returns false and drops the request while another roll is in progress
func (s *System) RollGoodDie() bool {
	s.Start()
	if s.phase != PhaseIdle {
		s.statDropped.Add(1)
		s.logger.Debug("roll request dropped", "die", sense.GoodDie.String(), "rolling", s.session.die.String())
		return false
	}
	return s.beginRoll(sense.GoodDie)
}

// IsRolling reports whether a roll animation is in progress
func (s *System) IsRolling() bool {
	return s.rolling.Load()
}

// Phase returns the scheduler phase
func (s *System) Phase() Phase {
	return s.phase
}

// Outcome returns the committed dice
func (s *System) Outcome() sense.Outcome {
	return s.outcome
}

// Vector returns the effective state of every sense
func (s *System) Vector() sense.Vector {
	return s.vector
}

// Now returns accumulated game time
func (s *System) Now() time.Duration {
	return s.now
}

// Tuning returns the effective tuning
func (s *System) Tuning() Tuning {
	return s.tuning
}

// NextBadRoll returns game time remaining until the bad die timer is due
func (s *System) NextBadRoll() time.Duration {
	remaining := s.lastBadRoll + s.tuning.BadDieInterval - s.now
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SpeakLoopAttached reports whether the Speech Positive loop is attached
func (s *System) SpeakLoopAttached() bool {
	return s.dispatcher.LoopAttached()
}

// Subscribe registers a dice change listener
// Listeners may be called with values identical to the previous call
func (s *System) Subscribe(fn func(DiceChanged)) event.Subscription {
	return s.changed.Subscribe(fn)
}

// Unsubscribe removes a dice change listener
func (s *System) Unsubscribe(sub event.Subscription) bool {
	return s.changed.Unsubscribe(sub)
}

// rollSilent commits a die immediately, no cue, freeze or animation
func (s *System) rollSilent(die sense.Die) {
	_, span := s.tracer.Start(context.Background(), "sensory.roll",
		trace.WithAttributes(rollAttributes(die, true)...),
	)
	face := sense.Pick(s.rng)
	s.commit(die, face, true)
	s.statSilent.Add(1)
	span.SetAttributes(faceAttribute(face))
	span.End()
}

// commit writes the face, derives the vector, applies sinks, then notifies
func (s *System) commit(die sense.Die, face sense.Sense, silent bool) {
	s.outcome = s.outcome.With(die, face)
	s.vector = sense.Derive(s.outcome)
	s.dispatcher.Apply(s.vector)

	s.statGoodFace.Set(s.outcome.Good.String())
	s.statBadFace.Set(s.outcome.Bad.String())
	for _, sn := range sense.Senses {
		s.statStates[sn].Set(s.vector.Get(sn).String())
	}

	s.logger.Info("dice committed",
		"die", die.String(),
		"outcome", face.String(),
		"silent", silent,
		"sight", s.vector.Get(sense.Sight).String(),
		"hearing", s.vector.Get(sense.Hearing).String(),
		"speech", s.vector.Get(sense.Speech).String(),
	)

	s.changed.Publish(DiceChanged{
		Good:   s.outcome.Good,
		Bad:    s.outcome.Bad,
		Die:    die,
		Silent: silent,
	})
}

func (s *System) transition(to Phase) bool {
	if !CanTransition(s.phase, to) {
		return false
	}
	s.phase = to
	s.rolling.Store(to == PhaseRollInProgress)
	s.statRolling.Store(to == PhaseRollInProgress)
	return true
}
