// Package sense holds the dual-die data model: senses, effective states,
// die outcomes and the pure derivation between them
package sense

// Sense is one of the three senses a die face can select
type Sense uint8

const (
	Sight Sense = iota
	Hearing
	Speech
	Count
)

// Senses lists every sense in face order
var Senses = [Count]Sense{Sight, Hearing, Speech}

// String returns the sense name
func (s Sense) String() string {
	switch s {
	case Sight:
		return "sight"
	case Hearing:
		return "hearing"
	case Speech:
		return "speech"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three senses
func (s Sense) Valid() bool {
	return s < Count
}

// State is the effective state of a sense after composing both dice
type State uint8

const (
	Negative State = iota
	Neutral
	Positive
)

// String returns the state name
func (st State) String() string {
	switch st {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	default:
		return "unknown"
	}
}

// Die names one of the two dice
type Die uint8

const (
	GoodDie Die = iota
	BadDie
)

// String returns the die name
func (d Die) String() string {
	if d == GoodDie {
		return "good"
	}
	return "bad"
}
