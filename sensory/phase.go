package sensory

// Phase is the scheduler state
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRollInProgress
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRollInProgress:
		return "rolling"
	default:
		return "unknown"
	}
}

var validTransitions = map[Phase][]Phase{
	PhaseIdle:           {PhaseRollInProgress},
	PhaseRollInProgress: {PhaseIdle},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
