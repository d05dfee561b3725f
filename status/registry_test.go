package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableReturnsStablePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Counters.Get("sensory.rolls.good")
	b := r.Counters.Get("sensory.rolls.good")
	assert.Same(t, a, b)
	assert.True(t, r.Counters.Has("sensory.rolls.good"))
	assert.False(t, r.Counters.Has("sensory.rolls.bad"))
}

func TestTableConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Counters.Get("loop.ticks").Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8), r.Counters.Get("loop.ticks").Load())
	assert.Equal(t, 1, r.Counters.Len())
}

func TestSnapshotSortedAndRendered(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get("b.count").Store(3)
	r.Gauges.Get("a.gain").Set(-6)
	r.Labels.Get("c.face").Set("hearing")
	r.Flags.Get("d.rolling").Store(true)

	assert.Equal(t, []Metric{
		{"a.gain", "-6.00"},
		{"b.count", "3"},
		{"c.face", "hearing"},
		{"d.rolling", "true"},
	}, r.Snapshot())
	assert.Equal(t, 4, r.Len())
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	assert.Equal(t, "", l.Value())
	l.Set("abcdefghijklmnopqrstuvwxyz0123")
	assert.Len(t, l.Value(), LabelLimit)
}
