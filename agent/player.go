package agent

import (
	"time"

	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/vmath"
)

// Player is the controlled body: locomotion, orientation and facing
// Main-loop exclusive
type Player struct {
	pos      vmath.Vec2
	vel      vmath.Vec2
	input    vmath.Vec2
	facing   float64 // Degrees, last movement heading
	rotation float64 // Degrees, visual spin applied by dice rolls
	speed    float64
	enabled  bool
}

// NewPlayer creates an enabled player at pos facing +X
func NewPlayer(pos vmath.Vec2) *Player {
	return &Player{
		pos:     pos,
		speed:   parameter.PlayerMoveSpeed,
		enabled: true,
	}
}

// SetEnabled implements sensory.Locomotion
// A disabled player ignores input and keeps its current velocity
func (p *Player) SetEnabled(enabled bool) { p.enabled = enabled }

// ResetVelocity implements sensory.Locomotion
func (p *Player) ResetVelocity() { p.vel = vmath.Vec2{} }

// Rotation implements sensory.Orientation
func (p *Player) Rotation() float64 { return p.rotation }

// SetRotation implements sensory.Orientation
func (p *Player) SetRotation(degrees float64) { p.rotation = degrees }

func (p *Player) Enabled() bool { return p.enabled }
func (p *Player) Position() vmath.Vec2 { return p.pos }
func (p *Player) Velocity() vmath.Vec2 { return p.vel }
func (p *Player) Facing() float64 { return p.facing }

// SetInput sets the desired movement direction; zero stops
func (p *Player) SetInput(dir vmath.Vec2) {
	p.input = dir
}

// Step applies input to velocity while enabled and integrates position
func (p *Player) Step(dt time.Duration) {
	if p.enabled {
		p.vel = vmath.V2Scale(vmath.V2Normalize(p.input), p.speed)
		if vmath.V2MagSq(p.input) > 0.01 {
			p.facing = vmath.V2Heading(p.input)
		}
	}
	p.pos = vmath.V2Add(p.pos, vmath.V2Scale(p.vel, dt.Seconds()))
}
