package core

// Behavior is the movement mode broadcast to hostile agents
type Behavior uint8

const (
	BehaviorPatrol Behavior = iota // Waypoint patrol, unaffected by the player
	BehaviorChase                  // Attracted to the player
	BehaviorRepel                  // Flees the player
)

// String returns the behavior name
func (b Behavior) String() string {
	switch b {
	case BehaviorPatrol:
		return "patrol"
	case BehaviorChase:
		return "chase"
	case BehaviorRepel:
		return "repel"
	default:
		return "unknown"
	}
}
