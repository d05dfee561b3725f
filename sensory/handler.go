package sensory

import "github.com/lixenwraith/sense-dice/event"

// EventTypes implements engine.EventHandler
func (s *System) EventTypes() []event.EventType {
	return []event.EventType{event.EventPickup}
}

// HandleEvent implements engine.EventHandler; a pickup requests a good roll
func (s *System) HandleEvent(ev event.Event) {
	if ev.Type == event.EventPickup {
		s.RollGoodDie()
	}
}
