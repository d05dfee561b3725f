package sensory

import (
	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
)

// Agent is a hostile world agent affected by freezes and Speech
type Agent interface {
	// SetFrozen suspends the agent; frozen agents produce zero velocity
	SetFrozen(frozen bool)
	SetBehavior(mode core.Behavior)
	// Alive is false once the agent has been destroyed
	Alive() bool
}

// AgentRegistry enumerates the current hostile agents
type AgentRegistry interface {
	Agents() []Agent
}

// Locomotion is the player's movement component
type Locomotion interface {
	SetEnabled(enabled bool)
	ResetVelocity()
}

// Orientation is the player's visual rotation in degrees
type Orientation interface {
	Rotation() float64
	SetRotation(degrees float64)
}

// CuePlayer plays fire-and-forget one-shot cues
type CuePlayer interface {
	PlayCue(cue core.Cue, volume float64)
}

// GainControl sets the global audio mix level in dB
type GainControl interface {
	SetGain(db float64)
}

// LoopPlayer attaches and detaches continuous cues
type LoopPlayer interface {
	// StartLoop returns true if the loop is playing after the call
	StartLoop(cue core.Cue) bool
	StopLoop(cue core.Cue)
}

// VisionController receives the player's vision cone
type VisionController interface {
	SetCone(cone Cone)
}

// FaceDisplay shows die faces; subscribed to dice changes and driven
// directly while a roll animates
type FaceDisplay interface {
	ShowFaces(good, bad sense.Sense)
}

// Deps are the collaborators of a System, every field is optional
type Deps struct {
	Agents      AgentRegistry
	Locomotion  Locomotion
	Orientation Orientation
	Cues        CuePlayer
	Gain        GainControl
	Loops       LoopPlayer
	Vision      VisionController
	Faces       FaceDisplay
}
