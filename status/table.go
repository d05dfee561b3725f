package status

import (
	"slices"
	"sync"
)

// Table maps metric names to stable pointers. Producers look a name up once at
// construction and write through the pointer from then on.
type Table[T any] struct {
	entries sync.Map // string -> *T
}

// Get returns the metric for name, allocating it on first use
func (t *Table[T]) Get(name string) *T {
	if p, ok := t.entries.Load(name); ok {
		return p.(*T)
	}
	p, _ := t.entries.LoadOrStore(name, new(T))
	return p.(*T)
}

func (t *Table[T]) Has(name string) bool {
	_, ok := t.entries.Load(name)
	return ok
}

// Each visits entries ordered by name
func (t *Table[T]) Each(fn func(name string, p *T)) {
	var names []string
	t.entries.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	for _, n := range names {
		p, _ := t.entries.Load(n)
		fn(n, p.(*T))
	}
}

func (t *Table[T]) Len() int {
	n := 0
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
