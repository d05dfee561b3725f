package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a TimeProvider that only moves when advanced
// Safe for concurrent Now and Advance
type MockTimeProvider struct {
	base   time.Time
	offset atomic.Int64 // Nanoseconds since base
}

// NewMockTimeProvider creates a provider frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{base: start}
}

// Now implements TimeProvider
func (m *MockTimeProvider) Now() time.Time {
	return m.base.Add(time.Duration(m.offset.Load()))
}

// Advance moves the provider forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}
