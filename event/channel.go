package event

// Subscription identifies a registered listener
type Subscription uint64

type listener[T any] struct {
	id Subscription
	fn func(T)
}

// Channel is a synchronous multicast channel with push semantics
// Not safe for concurrent use; owned by the loop goroutine
type Channel[T any] struct {
	listeners []listener[T]
	nextID    Subscription
	published uint64
}

// NewChannel creates an empty channel
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Subscribe registers fn and returns its handle, nil fn is ignored
func (c *Channel[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return 0
	}
	c.nextID++
	c.listeners = append(c.listeners, listener[T]{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes the listener, returns false if it was not registered
func (c *Channel[T]) Unsubscribe(sub Subscription) bool {
	for i, l := range c.listeners {
		if l.id == sub {
			// Copy-on-write so an in-flight Publish keeps its snapshot
			next := make([]listener[T], 0, len(c.listeners)-1)
			next = append(next, c.listeners[:i]...)
			next = append(next, c.listeners[i+1:]...)
			c.listeners = next
			return true
		}
	}
	return false
}

// Publish invokes every listener in subscription order
func (c *Channel[T]) Publish(v T) {
	c.published++
	snapshot := c.listeners
	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of listeners
func (c *Channel[T]) Len() int {
	return len(c.listeners)
}

// Published returns the number of Publish calls
func (c *Channel[T]) Published() uint64 {
	return c.published
}
