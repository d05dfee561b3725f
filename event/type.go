package event

// EventType represents the type of loop event
type EventType int

const (
	// EventTick is reserved for the loop's own tick and never queued
	EventTick EventType = iota

	// EventPickup requests an animated good die roll
	// Trigger: Pickup collected | Consumer: sensory bridge | Payload: nil
	EventPickup

	// EventPause stops game time
	// Trigger: Input | Consumer: Loop | Payload: nil
	EventPause

	// EventResume restarts game time
	// Trigger: Input | Consumer: Loop | Payload: nil
	EventResume

	// EventQuit ends the session
	// Trigger: Input, signal | Consumer: cmd | Payload: nil
	EventQuit

	// EventSpawnAgent adds a hostile agent
	// Trigger: Input | Consumer: agent registry | Payload: *SpawnAgentPayload
	EventSpawnAgent

	// EventDestroyAgent removes a hostile agent
	// Trigger: Input | Consumer: agent registry | Payload: *DestroyAgentPayload
	EventDestroyAgent

	// EventMove sets the player's movement input
	// Trigger: Input | Consumer: player | Payload: *MovePayload
	EventMove

	eventTypeCount
)

var typeNames = [eventTypeCount]string{
	EventTick:         "Tick",
	EventPickup:       "EventPickup",
	EventPause:        "EventPause",
	EventResume:       "EventResume",
	EventQuit:         "EventQuit",
	EventSpawnAgent:   "EventSpawnAgent",
	EventDestroyAgent: "EventDestroyAgent",
	EventMove:         "EventMove",
}

// String returns the registered event name
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "EventUnknown"
	}
	return typeNames[t]
}

// ParseType returns the EventType registered under name
func ParseType(name string) (EventType, bool) {
	for i, n := range typeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// Event is a queued loop event
type Event struct {
	Type    EventType
	Payload any
}

// SpawnAgentPayload places a hostile agent
type SpawnAgentPayload struct {
	X, Y      float64
	Waypoints [][2]float64
}

// DestroyAgentPayload removes a hostile agent by ID, zero means most recent
type DestroyAgentPayload struct {
	ID int
}

// MovePayload is the player's normalized movement input
type MovePayload struct {
	X, Y float64
}
