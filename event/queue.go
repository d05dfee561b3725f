package event

import (
	"sync/atomic"

	"github.com/lixenwraith/sense-dice/parameter"
)

const (
	queueCap  = parameter.EventQueueSize
	queueMask = parameter.EventBufferMask
)

// entry is an event tagged with the sequence number it was pushed under
type entry struct {
	seq uint64
	ev  Event
}

// Queue is a fixed ring carrying input from any number of producer goroutines
// to the single loop goroutine. When full, Push overwrites the oldest pending
// event and counts it as dropped.
//
// Each slot publishes an immutable entry through an atomic pointer, so a
// producer lapping the consumer never writes memory the consumer is reading.
// The consumer tells fresh, stale and overwritten slots apart by sequence.
type Queue struct {
	slots   [queueCap]atomic.Pointer[entry]
	read    atomic.Uint64 // next sequence to consume
	write   atomic.Uint64 // next sequence to reserve
	dropped atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push is safe for concurrent producers
func (q *Queue) Push(ev Event) {
	seq := q.write.Add(1) - 1
	e := &entry{seq: seq, ev: ev}
	slot := &q.slots[seq&queueMask]
	for {
		cur := slot.Load()
		if cur != nil && cur.seq > seq {
			break // a later lap already owns the slot
		}
		if slot.CompareAndSwap(cur, e) {
			break
		}
	}

	for {
		r := q.read.Load()
		if r+queueCap > seq {
			return
		}
		if next := seq + 1 - queueCap; q.read.CompareAndSwap(r, next) {
			q.dropped.Add(next - r)
			return
		}
	}
}

// PushType pushes an event without payload
func (q *Queue) PushType(t EventType) {
	q.Push(Event{Type: t})
}

// Consume takes every published event in push order. Only the loop goroutine
// calls it. A slot still being written ends the batch; it and everything after
// it arrive on a later call.
func (q *Queue) Consume() []Event {
	seq := q.read.Load() // before write, so seq <= w
	w := q.write.Load()
	if seq >= w {
		return nil
	}

	var out []Event
	var lost uint64
	if w-seq > queueCap {
		lost = w - queueCap - seq // lapped before any producer moved read
		seq = w - queueCap
	}
	for ; seq < w; seq++ {
		e := q.slots[seq&queueMask].Load()
		if e == nil || e.seq < seq {
			break // reserved, not yet published
		}
		if e.seq == seq {
			out = append(out, e.ev)
		} else {
			lost++ // overwritten by a later lap
		}
	}
	if lost > 0 {
		q.dropped.Add(lost)
	}

	// Producers may have moved read past seq on overflow; never move it back
	for {
		r := q.read.Load()
		if r >= seq || q.read.CompareAndSwap(r, seq) {
			break
		}
	}
	return out
}

// Len is the approximate number of pending events
func (q *Queue) Len() int {
	r, w := q.read.Load(), q.write.Load()
	if w <= r {
		return 0
	}
	return int(min(w-r, queueCap))
}

// Dropped counts events overwritten before the loop consumed them. Under
// concurrent overflow it may overcount, never undercount
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
