package sensory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
)

// rollSession is the explicit state of an animated roll between ticks
type rollSession struct {
	die       sense.Die
	start     time.Duration // Game time the roll began
	faceIndex int           // Next face to show while cycling
	nextFlip  time.Duration // Elapsed time of the next face flip
	spinStart float64       // Orientation when the roll began
	spinDir   float64       // +1 counter-clockwise, -1 clockwise
	span      trace.Span
}

// beginRoll runs the roll start effects: cue, freeze, momentum reset, fall
// cue and spin setup, then shows the first face
func (s *System) beginRoll(die sense.Die) bool {
	if !s.transition(PhaseRollInProgress) {
		return false
	}

	_, span := s.tracer.Start(context.Background(), "sensory.roll",
		trace.WithAttributes(rollAttributes(die, false)...),
	)

	dir := 1.0
	if s.rng.IntN(2) == 0 {
		dir = -1.0
	}
	var spinStart float64
	if s.deps.Orientation != nil {
		spinStart = s.deps.Orientation.Rotation()
	}

	s.session = rollSession{
		die:       die,
		start:     s.now,
		spinStart: spinStart,
		spinDir:   dir,
		span:      span,
	}

	s.playCue(core.CueRolling)
	s.freeze(true)
	if s.deps.Locomotion != nil {
		s.deps.Locomotion.ResetVelocity()
	}
	s.playCue(core.CueFall)

	s.logger.Debug("roll started", "die", die.String(), "spin", dir)
	s.advance()
	return true
}

// advance applies face cycling and spin for the current elapsed time and
// commits once the roll duration has passed
func (s *System) advance() {
	sess := &s.session
	elapsed := s.now - sess.start
	d := s.tuning.RollDuration

	for sess.nextFlip < d && elapsed >= sess.nextFlip {
		s.showFace(sense.Senses[sess.faceIndex%int(sense.Count)])
		sess.faceIndex++
		sess.nextFlip += s.tuning.FlipInterval
	}

	if elapsed >= d {
		s.finishRoll()
		return
	}

	if s.deps.Orientation != nil {
		progress := float64(elapsed) / float64(d)
		turn := 360 * s.tuning.SpinTurns * sess.spinDir
		s.deps.Orientation.SetRotation(sess.spinStart + turn*progress)
	}
}

// finishRoll draws and commits the die, then unfreezes and returns to idle
func (s *System) finishRoll() {
	sess := s.session
	face := sense.Pick(s.rng)
	s.commit(sess.die, face, false)

	if sess.die == sense.GoodDie {
		s.statGoodRolls.Add(1)
		s.playCue(core.CueGoodRolled)
	} else {
		s.statBadRolls.Add(1)
		s.playCue(core.CueBadRolled)
	}

	s.freeze(false)
	if s.deps.Orientation != nil {
		s.deps.Orientation.SetRotation(0)
	}

	s.session = rollSession{}
	s.transition(PhaseIdle)

	if sess.span != nil {
		sess.span.SetAttributes(faceAttribute(face))
		sess.span.End()
	}
}

// RollProgress returns the rolling die and its completion in [0,1]
func (s *System) RollProgress() (sense.Die, float64, bool) {
	if s.phase != PhaseRollInProgress {
		return 0, 0, false
	}
	p := float64(s.now-s.session.start) / float64(s.tuning.RollDuration)
	if p > 1 {
		p = 1
	}
	return s.session.die, p, true
}

// showFace displays face on the rolling die, the other keeps its committed face
func (s *System) showFace(face sense.Sense) {
	if s.deps.Faces == nil {
		return
	}
	o := s.outcome.With(s.session.die, face)
	s.deps.Faces.ShowFaces(o.Good, o.Bad)
}

// freeze sets the frozen flag on every live agent and toggles player locomotion
// The agent set is queried each call; destroyed agents are skipped
func (s *System) freeze(frozen bool) {
	if s.deps.Agents != nil {
		for _, a := range s.deps.Agents.Agents() {
			if a == nil || !a.Alive() {
				continue
			}
			a.SetFrozen(frozen)
		}
	}
	if s.deps.Locomotion != nil {
		s.deps.Locomotion.SetEnabled(!frozen)
	}
}

func (s *System) playCue(cue core.Cue) {
	if s.deps.Cues == nil {
		return
	}
	s.deps.Cues.PlayCue(cue, s.tuning.CueVolume)
}

func rollAttributes(die sense.Die, silent bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("die", die.String()),
		attribute.Bool("silent", silent),
	}
}

func faceAttribute(face sense.Sense) attribute.KeyValue {
	return attribute.String("outcome", face.String())
}
