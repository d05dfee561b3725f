package sense

// Outcome is the committed face of each die
type Outcome struct {
	Good Sense
	Bad  Sense
}

// With returns a copy of o with die d set to s
func (o Outcome) With(d Die, s Sense) Outcome {
	if d == GoodDie {
		o.Good = s
	} else {
		o.Bad = s
	}
	return o
}

// Face returns the committed face of die d
func (o Outcome) Face(d Die) Sense {
	if d == GoodDie {
		return o.Good
	}
	return o.Bad
}

// Vector maps every sense to its effective state
// Indexed by Sense; always fully populated when built by Derive or NewVector
type Vector [Count]State

// NewVector returns a vector with every sense Neutral
func NewVector() Vector {
	return Vector{Neutral, Neutral, Neutral}
}

// Get returns the effective state of s
func (v Vector) Get(s Sense) State {
	if !s.Valid() {
		return Neutral
	}
	return v[s]
}

// Derive computes the effective states for an outcome
// Bad die is applied after good, so a shared face ends Negative
func Derive(o Outcome) Vector {
	v := NewVector()
	if o.Good.Valid() {
		v[o.Good] = Positive
	}
	if o.Bad.Valid() {
		v[o.Bad] = Negative
	}
	return v
}
