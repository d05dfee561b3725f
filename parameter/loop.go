package parameter

import "time"

// Loop Timing
const (
	// TickInterval is the fixed game logic update interval
	TickInterval = 50 * time.Millisecond

	// MaxTickDelta caps the game delta of a single tick after a stall
	MaxTickDelta = 250 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the input ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo (256 - 1)
	EventBufferMask = EventQueueSize - 1
)

// Agents
const (
	// AgentDetectionRange is the distance within which behavior modes apply
	AgentDetectionRange = 5.0

	// AgentPatrolSpeed, AgentChaseSpeed, AgentRepelSpeed are in world units per second
	AgentPatrolSpeed = 2.0
	AgentChaseSpeed  = 3.0
	AgentRepelSpeed  = 3.0

	// WaypointReachDistance is the arrival threshold for patrol waypoints
	WaypointReachDistance = 0.1

	// PlayerMoveSpeed is the player locomotion speed in world units per second
	PlayerMoveSpeed = 5.0
)

// Audio Backend
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)
