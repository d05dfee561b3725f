package engine

import (
	"sync"
	"time"
)

// PausableClock measures game time: wall time since creation minus every span
// spent paused
type PausableClock struct {
	mu       sync.Mutex
	src      TimeProvider
	origin   time.Time
	paused   bool
	pausedAt time.Time
	banked   time.Duration // finished pauses
}

// NewPausableClock runs on the system clock
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(SystemTime)
}

func NewPausableClockWith(src TimeProvider) *PausableClock {
	return &PausableClock{src: src, origin: src.Now()}
}

// Elapsed is game time since creation; it holds still while paused
func (c *PausableClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.src.Now()
	if c.paused {
		now = c.pausedAt
	}
	return now.Sub(c.origin) - c.banked
}

// Pause freezes game time; pausing twice keeps the first pause point
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		c.paused, c.pausedAt = true, c.src.Now()
	}
}

// Resume banks the pause span and lets game time run again
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.banked += c.src.Now().Sub(c.pausedAt)
		c.paused = false
	}
}

func (c *PausableClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// TotalPauseDuration includes the pause in progress, if any
func (c *PausableClock) TotalPauseDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.banked
	if c.paused {
		total += c.src.Now().Sub(c.pausedAt)
	}
	return total
}
