package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/lixenwraith/sense-dice/agent"
	"github.com/lixenwraith/sense-dice/audio"
	"github.com/lixenwraith/sense-dice/config"
	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/engine"
	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/render"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/sensory"
	"github.com/lixenwraith/sense-dice/status"
)

// session is one wired game: loop, world, dice and their sinks
type session struct {
	cfg    *config.Config
	logger *slog.Logger

	reg   *status.Registry
	clock *engine.PausableClock
	queue *event.Queue
	loop  *engine.Loop
	world *agent.World
	sound *audio.SoundManager
	dice  *sensory.System
	hud   *render.TerminalRenderer // Nil when headless
}

// newSession wires a session over clock; hud may be nil
func newSession(cfg *config.Config, logger *slog.Logger, clock *engine.PausableClock, sound *audio.SoundManager, hud *render.TerminalRenderer) *session {
	s := &session{
		cfg:    cfg,
		logger: logger,
		reg:    status.NewRegistry(),
		clock:  clock,
		queue:  event.NewQueue(),
		world:  agent.NewWorld(logger.With("component", "world")),
		sound:  sound,
		hud:    hud,
	}

	deps := sensory.Deps{
		Agents:      s.world.Registry,
		Locomotion:  s.world.Player,
		Orientation: s.world.Player,
		Cues:        sound,
		Gain:        sound,
		Loops:       sound,
	}
	if hud != nil {
		deps.Vision = hud
		deps.Faces = hud
	}

	opts := []sensory.Option{
		sensory.WithLogger(logger.With("component", "sensory")),
		sensory.WithStatus(s.reg),
	}
	if seed := cfg.Dice.Seed; seed != 0 {
		opts = append(opts, sensory.WithRandom(rand.New(rand.NewPCG(seed, seed))))
	}
	s.dice = sensory.New(cfg.Tuning(), deps, opts...)
	s.world.Behavior = func() core.Behavior {
		return sensory.BehaviorFor(s.dice.Vector().Get(sense.Speech))
	}

	s.loop = engine.NewLoop(clock, s.queue, cfg.Loop.TickInterval, s.reg, logger.With("component", "loop"))
	s.loop.Register(s.world)
	s.loop.Register(s.dice)
	s.loop.AddUpdater(s.dice)
	s.loop.AddUpdater(s.world)
	if hud != nil {
		s.loop.AddPostTick(func() { hud.RenderFrame(s.frame()) })
	}
	return s
}

// start rolls the dice silently; subscribe before calling it to see the
// startup commits
func (s *session) start() {
	s.dice.Start()
}

// frame captures the render state after a tick
func (s *session) frame() render.Frame {
	p := s.world.Player
	f := render.Frame{
		Vector:      s.dice.Vector(),
		GainDB:      s.sound.Gain(),
		NextBadRoll: s.dice.NextBadRoll(),
		Paused:      s.clock.IsPaused(),
		Player: render.PlayerView{
			Pos:      p.Position(),
			Facing:   p.Facing(),
			Rotation: p.Rotation(),
			Enabled:  p.Enabled(),
		},
		Metrics: s.reg.Snapshot(),
	}
	f.RollDie, f.RollProgress, f.Rolling = s.dice.RollProgress()

	for _, h := range s.world.Registry.Hostiles() {
		f.Agents = append(f.Agents, render.AgentView{
			Pos:      h.Position(),
			Behavior: h.Behavior(),
			Frozen:   h.Frozen(),
		})
	}
	return f
}

// speakLoop reports whether the Speech murmur is audible
func (s *session) speakLoop() bool {
	return s.sound.LoopActive(core.CueSpeakLoop)
}
