package agent

import (
	"time"

	"github.com/lixenwraith/sense-dice/sensory"
	"github.com/lixenwraith/sense-dice/vmath"
)

// Registry owns the live hostile agents
// Main-loop exclusive
type Registry struct {
	hostiles []*Hostile
	nextID   int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn adds a hostile at pos patrolling waypoints
func (r *Registry) Spawn(pos vmath.Vec2, waypoints ...vmath.Vec2) *Hostile {
	r.nextID++
	h := newHostile(r.nextID, pos, waypoints)
	r.hostiles = append(r.hostiles, h)
	return h
}

// Destroy marks the hostile dead and removes it, false if id is unknown
func (r *Registry) Destroy(id int) bool {
	for i, h := range r.hostiles {
		if h.id == id {
			h.alive = false
			h.vel = vmath.Vec2{}
			r.hostiles = append(r.hostiles[:i:i], r.hostiles[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the hostile with id
func (r *Registry) Get(id int) (*Hostile, bool) {
	for _, h := range r.hostiles {
		if h.id == id {
			return h, true
		}
	}
	return nil, false
}

// Agents implements sensory.AgentRegistry
func (r *Registry) Agents() []sensory.Agent {
	out := make([]sensory.Agent, len(r.hostiles))
	for i, h := range r.hostiles {
		out[i] = h
	}
	return out
}

// Hostiles returns the live hostiles in spawn order
func (r *Registry) Hostiles() []*Hostile {
	return r.hostiles
}

// Len returns the number of live hostiles
func (r *Registry) Len() int {
	return len(r.hostiles)
}

// Step advances every hostile against the player position
func (r *Registry) Step(dt time.Duration, player vmath.Vec2) {
	for _, h := range r.hostiles {
		h.Step(dt, player)
	}
}
