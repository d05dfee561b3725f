package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/vmath"
)

const (
	// spawnDistance is how far from the player new hostiles appear
	spawnDistance = 8.0
	// spawnSpread is the angle between consecutive spawns in degrees
	spawnSpread = 137.5
	// patrolHalfLength is the distance from spawn to each patrol end
	patrolHalfLength = 3.0
)

// keyAction is the result of translating one key press
type keyAction struct {
	ev   event.Event
	ok   bool // ev should be queued
	quit bool
}

// translateKey maps a key press to a loop event
// spawned counts earlier spawns so placement fans out around the player
func translateKey(ev *tcell.EventKey, paused bool, player vmath.Vec2, spawned int) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyAction{quit: true}
	case tcell.KeyUp:
		return move(0, 1)
	case tcell.KeyDown:
		return move(0, -1)
	case tcell.KeyLeft:
		return move(-1, 0)
	case tcell.KeyRight:
		return move(1, 0)
	case tcell.KeyEnter:
		return keyAction{ev: event.Event{Type: event.EventPickup}, ok: true}
	case tcell.KeyRune:
	default:
		return keyAction{}
	}

	switch ev.Rune() {
	case 'q':
		return keyAction{quit: true}
	case 'k', 'w':
		return move(0, 1)
	case 'j', 's':
		return move(0, -1)
	case 'h', 'a':
		return move(-1, 0)
	case 'l', 'd':
		return move(1, 0)
	case ' ', '.':
		return move(0, 0)
	case 'e', 'r':
		return keyAction{ev: event.Event{Type: event.EventPickup}, ok: true}
	case 'p':
		t := event.EventPause
		if paused {
			t = event.EventResume
		}
		return keyAction{ev: event.Event{Type: t}, ok: true}
	case 'n':
		return keyAction{ev: event.Event{Type: event.EventSpawnAgent, Payload: spawnPayload(player, spawned)}, ok: true}
	case 'x':
		return keyAction{ev: event.Event{Type: event.EventDestroyAgent, Payload: &event.DestroyAgentPayload{}}, ok: true}
	}
	return keyAction{}
}

func move(x, y float64) keyAction {
	return keyAction{ev: event.Event{Type: event.EventMove, Payload: &event.MovePayload{X: x, Y: y}}, ok: true}
}

// spawnPayload places the nth hostile on a ring around player, patrolling
// tangentially through its spawn point
func spawnPayload(player vmath.Vec2, n int) *event.SpawnAgentPayload {
	rad := float64(n) * spawnSpread * math.Pi / 180
	dir := vmath.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
	pos := vmath.V2Add(player, vmath.V2Scale(dir, spawnDistance))
	tangent := vmath.Vec2{X: -dir.Y, Y: dir.X}

	a := vmath.V2Add(pos, vmath.V2Scale(tangent, patrolHalfLength))
	b := vmath.V2Sub(pos, vmath.V2Scale(tangent, patrolHalfLength))
	return &event.SpawnAgentPayload{
		X:         pos.X,
		Y:         pos.Y,
		Waypoints: [][2]float64{{a.X, a.Y}, {b.X, b.Y}},
	}
}
