package status

import (
	"cmp"
	"slices"
	"strconv"
	"sync/atomic"
)

// Registry groups the metric tables shared by the loop, the dice and the HUD
type Registry struct {
	Counters Table[atomic.Int64]
	Flags    Table[atomic.Bool]
	Gauges   Table[Gauge]
	Labels   Table[Label]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Metric is one rendered name=value pair
type Metric struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by name
func (r *Registry) Snapshot() []Metric {
	out := make([]Metric, 0, r.Len())
	r.Counters.Each(func(k string, p *atomic.Int64) {
		out = append(out, Metric{k, strconv.FormatInt(p.Load(), 10)})
	})
	r.Flags.Each(func(k string, p *atomic.Bool) {
		out = append(out, Metric{k, strconv.FormatBool(p.Load())})
	})
	r.Gauges.Each(func(k string, p *Gauge) {
		out = append(out, Metric{k, strconv.FormatFloat(p.Value(), 'f', 2, 64)})
	})
	r.Labels.Each(func(k string, p *Label) {
		out = append(out, Metric{k, p.Value()})
	})
	slices.SortFunc(out, func(a, b Metric) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func (r *Registry) Len() int {
	return r.Counters.Len() + r.Flags.Len() + r.Gauges.Len() + r.Labels.Len()
}
