package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/status"
)

// Updater advances game logic by a game-time delta
type Updater interface {
	Update(dt time.Duration)
}

// UpdaterFunc adapts a function to Updater
type UpdaterFunc func(dt time.Duration)

// Update implements Updater
func (f UpdaterFunc) Update(dt time.Duration) { f(dt) }

// EventHandler processes routed events
type EventHandler interface {
	// HandleEvent is called on the loop goroutine before updaters run
	HandleEvent(ev event.Event)

	// EventTypes returns the event types the handler processes
	EventTypes() []event.EventType
}

// Loop drives game logic on a fixed tick over a pausable clock
//
// Each tick:
//  1. Game delta read from the clock (zero while paused, capped after stalls)
//  2. Queued events dispatched to handlers in FIFO order
//  3. Updaters run in registration order
//  4. Post-tick hooks run (rendering)
//
// Everything after step 1 runs on a single goroutine, so handlers and
// updaters never need their own locking
type Loop struct {
	clock        *PausableClock
	queue        *event.Queue
	tickInterval time.Duration
	logger       *slog.Logger

	handlers  map[event.EventType][]EventHandler
	updaters  []Updater
	postTicks []func()

	lastElapsed time.Duration
	tickCount   atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statTicks   *atomic.Int64
	statDropped *atomic.Int64
	statPaused  *atomic.Bool
}

// NewLoop creates a loop; reg and logger may be nil
func NewLoop(clock *PausableClock, queue *event.Queue, tickInterval time.Duration, reg *status.Registry, logger *slog.Logger) *Loop {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	l := &Loop{
		clock:        clock,
		queue:        queue,
		tickInterval: tickInterval,
		logger:       logger,
		handlers:     make(map[event.EventType][]EventHandler),
		stopChan:     make(chan struct{}),
		lastElapsed:  clock.Elapsed(),
		statTicks:    reg.Counters.Get("loop.ticks"),
		statDropped:  reg.Counters.Get("loop.queue_dropped"),
		statPaused:   reg.Flags.Get("loop.paused"),
	}
	l.Register(pauseHandler{clock: clock})
	return l
}

// Register adds a handler for its declared event types, must be called before Start
func (l *Loop) Register(h EventHandler) {
	for _, t := range h.EventTypes() {
		l.handlers[t] = append(l.handlers[t], h)
	}
}

// AddUpdater appends an updater, must be called before Start
func (l *Loop) AddUpdater(u Updater) {
	l.updaters = append(l.updaters, u)
}

// AddPostTick appends a hook run after updaters each tick
func (l *Loop) AddPostTick(fn func()) {
	l.postTicks = append(l.postTicks, fn)
}

// HandlerCount returns the number of handlers registered for t
func (l *Loop) HandlerCount(t event.EventType) int {
	return len(l.handlers[t])
}

// Tick reads the game delta from the clock and steps once
func (l *Loop) Tick() {
	elapsed := l.clock.Elapsed()
	dt := elapsed - l.lastElapsed
	l.lastElapsed = elapsed

	if dt < 0 {
		dt = 0
	}
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}
	l.Step(dt)
}

// Step dispatches pending events and runs updaters with an explicit delta
// The delta is zeroed while the clock is paused
// Used directly by headless simulation and tests
func (l *Loop) Step(dt time.Duration) {
	for _, ev := range l.queue.Consume() {
		for _, h := range l.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}

	// A pause dispatched above already freezes this tick
	if l.clock.IsPaused() {
		dt = 0
	}

	for _, u := range l.updaters {
		u.Update(dt)
	}

	for _, fn := range l.postTicks {
		fn()
	}

	ticks := l.tickCount.Add(1)
	l.statTicks.Store(int64(ticks))
	l.statDropped.Store(int64(l.queue.Dropped()))
	l.statPaused.Store(l.clock.IsPaused())
}

// TickCount returns the number of completed steps
func (l *Loop) TickCount() uint64 {
	return l.tickCount.Load()
}

// Start runs Tick on the loop goroutine at the configured interval
func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	go l.run()
}

// Stop halts the loop goroutine, safe to call multiple times
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
		l.running.Store(false)
	})
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.tickInterval)
	defer ticker.Stop()

	l.logger.Debug("loop started", "interval", l.tickInterval)
	for {
		select {
		case <-l.stopChan:
			l.logger.Debug("loop stopped", "ticks", l.tickCount.Load())
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

// pauseHandler maps pause events onto the clock
type pauseHandler struct {
	clock *PausableClock
}

func (h pauseHandler) EventTypes() []event.EventType {
	return []event.EventType{event.EventPause, event.EventResume}
}

func (h pauseHandler) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventPause:
		h.clock.Pause()
	case event.EventResume:
		h.clock.Resume()
	}
}
