package engine

import "time"

// TimeProvider is a source of wall time
type TimeProvider interface {
	Now() time.Time
}

// TimeFunc adapts a function to TimeProvider
type TimeFunc func() time.Time

// Now implements TimeProvider
func (f TimeFunc) Now() time.Time { return f() }

// SystemTime reads the system clock, including its monotonic component
// Cue playback and frame pacing use it directly since they ignore pause
var SystemTime TimeProvider = TimeFunc(time.Now)
