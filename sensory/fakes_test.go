package sensory

import (
	"fmt"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
)

// recorder collects collaborator calls in order across all fakes
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() {
	r.calls = nil
}

type fakeAgent struct {
	name     string
	rec      *recorder
	frozen   bool
	behavior core.Behavior
	dead     bool
	touched  int
}

func (a *fakeAgent) SetFrozen(frozen bool) {
	a.frozen = frozen
	a.touched++
	a.rec.add("%s.frozen=%t", a.name, frozen)
}

func (a *fakeAgent) SetBehavior(mode core.Behavior) {
	a.behavior = mode
	a.touched++
	a.rec.add("%s.behavior=%s", a.name, mode)
}

func (a *fakeAgent) Alive() bool { return !a.dead }

type fakeAgents struct {
	list []*fakeAgent
}

func (f *fakeAgents) Agents() []Agent {
	out := make([]Agent, len(f.list))
	for i, a := range f.list {
		out[i] = a
	}
	return out
}

type fakePlayer struct {
	rec      *recorder
	enabled  bool
	rotation float64
	resets   int
}

func (p *fakePlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
	p.rec.add("locomotion=%t", enabled)
}

func (p *fakePlayer) ResetVelocity() {
	p.resets++
	p.rec.add("reset")
}

func (p *fakePlayer) Rotation() float64 { return p.rotation }

func (p *fakePlayer) SetRotation(degrees float64) { p.rotation = degrees }

type fakeAudio struct {
	rec   *recorder
	cues  []core.Cue
	gain  float64
	loops map[core.Cue]int
	noDev bool
}

func (a *fakeAudio) PlayCue(cue core.Cue, volume float64) {
	a.cues = append(a.cues, cue)
	a.rec.add("cue:%s", cue)
}

func (a *fakeAudio) SetGain(db float64) {
	a.gain = db
	a.rec.add("gain")
}

func (a *fakeAudio) StartLoop(cue core.Cue) bool {
	if a.noDev {
		return false
	}
	if a.loops == nil {
		a.loops = make(map[core.Cue]int)
	}
	a.loops[cue]++
	a.rec.add("loop:start")
	return true
}

func (a *fakeAudio) StopLoop(cue core.Cue) {
	a.loops[cue]--
	a.rec.add("loop:stop")
}

type fakeVision struct {
	rec  *recorder
	cone Cone
	sets int
}

func (v *fakeVision) SetCone(cone Cone) {
	v.cone = cone
	v.sets++
	v.rec.add("vision")
}

type fakeFaces struct {
	shown []sense.Outcome
}

func (f *fakeFaces) ShowFaces(good, bad sense.Sense) {
	f.shown = append(f.shown, sense.Outcome{Good: good, Bad: bad})
}

// harness wires every fake into Deps
type harness struct {
	rec    *recorder
	agents *fakeAgents
	player *fakePlayer
	audio  *fakeAudio
	vision *fakeVision
	faces  *fakeFaces
}

func newHarness(names ...string) *harness {
	rec := &recorder{}
	h := &harness{
		rec:    rec,
		agents: &fakeAgents{},
		player: &fakePlayer{rec: rec, enabled: true},
		audio:  &fakeAudio{rec: rec},
		vision: &fakeVision{rec: rec},
		faces:  &fakeFaces{},
	}
	for _, n := range names {
		h.agents.list = append(h.agents.list, &fakeAgent{name: n, rec: rec})
	}
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		Agents:      h.agents,
		Locomotion:  h.player,
		Orientation: h.player,
		Cues:        h.audio,
		Gain:        h.audio,
		Loops:       h.audio,
		Vision:      h.vision,
		Faces:       h.faces,
	}
}
