package status

import (
	"math"
	"sync/atomic"
)

// LabelLimit caps label length so the HUD metrics line stays on one row
const LabelLimit = 24

// Gauge is a float64 stored as raw bits; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Value() float64 { return math.Float64frombits(g.bits.Load()) }

// Label holds a short string swapped in whole on every write
type Label struct {
	v atomic.Value
}

// Set stores s, cut to LabelLimit bytes
func (l *Label) Set(s string) {
	if len(s) > LabelLimit {
		s = s[:LabelLimit]
	}
	l.v.Store(s)
}

func (l *Label) Value() string {
	s, _ := l.v.Load().(string)
	return s
}
