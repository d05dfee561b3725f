package parameter

import "time"

// Rolling Cue (dice rattle)
const (
	CueRollingDuration = 400 * time.Millisecond
	CueRollingAttack   = 5 * time.Millisecond
	CueRollingRelease  = 150 * time.Millisecond
	CueRollingClickHz  = 22.0
)

// Fall Cue (descending thud)
const (
	CueFallDuration = 350 * time.Millisecond
	CueFallAttack   = 2 * time.Millisecond
	CueFallRelease  = 250 * time.Millisecond
	CueFallStartHz  = 220.0
	CueFallEndHz    = 55.0
)

// Good Rolled Cue (rising two-note chime)
const (
	CueGoodNote1Duration = 90 * time.Millisecond
	CueGoodNote2Duration = 220 * time.Millisecond
	CueGoodAttack        = 5 * time.Millisecond
	CueGoodRelease       = 120 * time.Millisecond
	CueGoodNote1Hz       = 659.25 // E5
	CueGoodNote2Hz       = 987.77 // B5
)

// Bad Rolled Cue (low square drone)
const (
	CueBadDuration = 300 * time.Millisecond
	CueBadAttack   = 10 * time.Millisecond
	CueBadRelease  = 200 * time.Millisecond
	CueBadHz       = 98.0 // G2
)

// Speak Loop (murmur while Speech is Positive)
const (
	CueSpeakCarrierHz  = 180.0
	CueSpeakSyllableHz = 4.0
	CueSpeakLevel      = 0.12
)
