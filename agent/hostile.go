// Package agent provides the hostile agents and the player that the sensory
// system freezes and steers
package agent

import (
	"time"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/vmath"
)

// Hostile is a patrolling agent whose reaction to the player follows its
// behavior mode while the player is within detection range
// Main-loop exclusive
type Hostile struct {
	id        int
	pos       vmath.Vec2
	vel       vmath.Vec2
	waypoints []vmath.Vec2
	waypoint  int
	direction int // +1 forward, -1 back along waypoints
	frozen    bool
	behavior  core.Behavior
	alive     bool
}

func newHostile(id int, pos vmath.Vec2, waypoints []vmath.Vec2) *Hostile {
	return &Hostile{
		id:        id,
		pos:       pos,
		waypoints: waypoints,
		direction: 1,
		alive:     true,
	}
}

// ID returns the registry id
func (h *Hostile) ID() int { return h.id }

// SetFrozen implements sensory.Agent
func (h *Hostile) SetFrozen(frozen bool) { h.frozen = frozen }

// SetBehavior implements sensory.Agent
func (h *Hostile) SetBehavior(mode core.Behavior) { h.behavior = mode }

// Alive implements sensory.Agent
func (h *Hostile) Alive() bool { return h.alive }

func (h *Hostile) Frozen() bool { return h.frozen }
func (h *Hostile) Behavior() core.Behavior { return h.behavior }
func (h *Hostile) Position() vmath.Vec2 { return h.pos }
func (h *Hostile) Velocity() vmath.Vec2 { return h.vel }
func (h *Hostile) Waypoints() []vmath.Vec2 { return h.waypoints }
func (h *Hostile) WaypointIndex() int { return h.waypoint }

// Step sets the velocity for this tick and integrates position over dt
func (h *Hostile) Step(dt time.Duration, player vmath.Vec2) {
	if !h.alive {
		return
	}
	if h.frozen {
		h.vel = vmath.Vec2{}
		return
	}

	if vmath.V2Dist(h.pos, player) <= parameter.AgentDetectionRange {
		switch h.behavior {
		case core.BehaviorChase:
			h.vel = vmath.V2Toward(h.pos, player, parameter.AgentChaseSpeed)
		case core.BehaviorRepel:
			h.vel = vmath.V2Toward(player, h.pos, parameter.AgentRepelSpeed)
		default:
			h.patrol()
		}
	} else {
		h.patrol()
	}

	h.pos = vmath.V2Add(h.pos, vmath.V2Scale(h.vel, dt.Seconds()))
}

// patrol walks the waypoints back and forth
func (h *Hostile) patrol() {
	if len(h.waypoints) == 0 {
		h.vel = vmath.Vec2{}
		return
	}

	target := h.waypoints[h.waypoint]
	h.vel = vmath.V2Toward(h.pos, target, parameter.AgentPatrolSpeed)

	if vmath.V2Dist(h.pos, target) < parameter.WaypointReachDistance {
		h.waypoint += h.direction
		if h.waypoint >= len(h.waypoints) || h.waypoint < 0 {
			h.direction = -h.direction
			h.waypoint += 2 * h.direction
			h.waypoint = max(0, min(h.waypoint, len(h.waypoints)-1))
		}
	}
}
