package agent

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/vmath"
)

// World bundles the player and the hostiles and routes input events to them
// Implements engine.Updater and engine.EventHandler
type World struct {
	Player   *Player
	Registry *Registry

	// Behavior reports the mode currently broadcast to hostiles; spawned
	// hostiles start in it. Nil leaves them on patrol until the next broadcast
	Behavior func() core.Behavior

	logger *slog.Logger
}

// NewWorld creates a world with the player at the origin
func NewWorld(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &World{
		Player:   NewPlayer(vmath.Vec2{}),
		Registry: NewRegistry(),
		logger:   logger,
	}
}

// Update advances the player, then every hostile against the new player position
func (w *World) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	w.Player.Step(dt)
	w.Registry.Step(dt, w.Player.Position())
}

// EventTypes implements engine.EventHandler
func (w *World) EventTypes() []event.EventType {
	return []event.EventType{event.EventSpawnAgent, event.EventDestroyAgent, event.EventMove}
}

// HandleEvent implements engine.EventHandler
func (w *World) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventSpawnAgent:
		p, ok := ev.Payload.(*event.SpawnAgentPayload)
		if !ok {
			return
		}
		waypoints := make([]vmath.Vec2, len(p.Waypoints))
		for i, wp := range p.Waypoints {
			waypoints[i] = vmath.Vec2{X: wp[0], Y: wp[1]}
		}
		h := w.Registry.Spawn(vmath.Vec2{X: p.X, Y: p.Y}, waypoints...)
		if w.Behavior != nil {
			h.SetBehavior(w.Behavior())
		}
		w.logger.Debug("agent spawned", "id", h.ID(), "x", p.X, "y", p.Y, "behavior", h.Behavior().String())

	case event.EventDestroyAgent:
		p, ok := ev.Payload.(*event.DestroyAgentPayload)
		if !ok {
			return
		}
		id := p.ID
		if id == 0 {
			hs := w.Registry.Hostiles()
			if len(hs) == 0 {
				return
			}
			id = hs[len(hs)-1].ID()
		}
		if w.Registry.Destroy(id) {
			w.logger.Debug("agent destroyed", "id", id)
		}

	case event.EventMove:
		p, ok := ev.Payload.(*event.MovePayload)
		if !ok {
			return
		}
		w.Player.SetInput(vmath.Vec2{X: p.X, Y: p.Y})
	}
}
