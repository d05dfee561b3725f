package sense

// RandomSource draws uniform integers in [0, n)
// *math/rand/v2.Rand satisfies it
type RandomSource interface {
	IntN(n int) int
}

// Pick draws a uniform sense from src
func Pick(src RandomSource) Sense {
	return Sense(src.IntN(int(Count)))
}

// Sequence is a scripted RandomSource that replays values in order
// Values are reduced modulo n; an exhausted sequence returns 0
type Sequence struct {
	values []int
	pos    int
}

// NewSequence creates a scripted source
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// IntN returns the next scripted value modulo n
func (s *Sequence) IntN(n int) int {
	if s.pos >= len(s.values) || n <= 0 {
		return 0
	}
	v := s.values[s.pos] % n
	if v < 0 {
		v += n
	}
	s.pos++
	return v
}

// Push appends values to the script
func (s *Sequence) Push(values ...int) {
	s.values = append(s.values, values...)
}

// Remaining returns the number of unread values
func (s *Sequence) Remaining() int {
	return len(s.values) - s.pos
}
