package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/status"
)

type recordingHandler struct {
	log *[]string
}

func (h recordingHandler) EventTypes() []event.EventType {
	return []event.EventType{event.EventPickup}
}

func (h recordingHandler) HandleEvent(ev event.Event) {
	*h.log = append(*h.log, ev.Type.String())
}

func TestLoopStepDispatchesBeforeUpdate(t *testing.T) {
	clock, _ := newMockClock()
	q := event.NewQueue()
	loop := NewLoop(clock, q, 0, nil, nil)

	var order []string
	loop.Register(recordingHandler{log: &order})
	loop.AddUpdater(UpdaterFunc(func(dt time.Duration) {
		order = append(order, "update:"+dt.String())
	}))
	loop.AddPostTick(func() { order = append(order, "post") })

	q.PushType(event.EventPickup)
	loop.Step(50 * time.Millisecond)

	assert.Equal(t, []string{"EventPickup", "update:50ms", "post"}, order)
	assert.Equal(t, uint64(1), loop.TickCount())
	assert.Equal(t, 1, loop.HandlerCount(event.EventPickup))
}

func TestLoopTickUsesGameTime(t *testing.T) {
	clock, mock := newMockClock()
	q := event.NewQueue()
	reg := status.NewRegistry()
	loop := NewLoop(clock, q, 0, reg, nil)

	var deltas []time.Duration
	loop.AddUpdater(UpdaterFunc(func(dt time.Duration) { deltas = append(deltas, dt) }))

	mock.Advance(40 * time.Millisecond)
	loop.Tick()

	q.PushType(event.EventPause)
	mock.Advance(10 * time.Millisecond)
	loop.Tick() // pause dispatched before updaters, tick is frozen

	mock.Advance(time.Second)
	loop.Tick()

	q.PushType(event.EventResume)
	loop.Tick()
	mock.Advance(20 * time.Millisecond)
	loop.Tick()

	require.Len(t, deltas, 5)
	assert.Equal(t, 40*time.Millisecond, deltas[0])
	assert.Equal(t, time.Duration(0), deltas[1])
	assert.Equal(t, time.Duration(0), deltas[2], "paused clock yields zero delta")
	assert.Equal(t, time.Duration(0), deltas[3])
	assert.Equal(t, 20*time.Millisecond, deltas[4])
	assert.Equal(t, int64(5), reg.Counters.Get("loop.ticks").Load())
}

func TestLoopTickCapsStall(t *testing.T) {
	clock, mock := newMockClock()
	loop := NewLoop(clock, event.NewQueue(), 0, nil, nil)

	var got time.Duration
	loop.AddUpdater(UpdaterFunc(func(dt time.Duration) { got = dt }))

	mock.Advance(5 * time.Second)
	loop.Tick()
	assert.Equal(t, parameter.MaxTickDelta, got)
}

func TestLoopStartStop(t *testing.T) {
	loop := NewLoop(NewPausableClock(), event.NewQueue(), 5*time.Millisecond, nil, nil)
	loop.Start()
	loop.Start()

	require.Eventually(t, func() bool { return loop.TickCount() > 2 }, time.Second, 5*time.Millisecond)

	loop.Stop()
	loop.Stop()
}

func TestLoopStepHonorsPause(t *testing.T) {
	clock, _ := newMockClock()
	q := event.NewQueue()
	loop := NewLoop(clock, q, 0, nil, nil)

	var total time.Duration
	loop.AddUpdater(UpdaterFunc(func(dt time.Duration) { total += dt }))

	loop.Step(50 * time.Millisecond)
	q.PushType(event.EventPause)
	loop.Step(50 * time.Millisecond)
	loop.Step(50 * time.Millisecond)
	q.PushType(event.EventResume)
	loop.Step(50 * time.Millisecond)

	assert.Equal(t, 100*time.Millisecond, total)
}
