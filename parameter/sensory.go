package parameter

import "time"

// Dice Timing
const (
	// RollDuration is the length of an animated roll, freeze to commit
	RollDuration = 2 * time.Second

	// FaceFlipInterval is the face cycling speed during an animated roll
	FaceFlipInterval = 200 * time.Millisecond

	// BadDieInterval is the time between autonomous bad die roll starts
	BadDieInterval = 10 * time.Second

	// SpinTurns is the number of full player turns during a roll
	SpinTurns = 2
)

// Cue Playback
const (
	// CueVolume is the default one-shot cue volume (0.0-1.0)
	CueVolume = 0.5
)

// Vision Cone - Negative
const (
	VisionNegativeInner     = 30.0
	VisionNegativeOuter     = 45.0
	VisionNegativeRadius    = 8.0
	VisionNegativeIntensity = 0.3
)

// Vision Cone - Neutral
const (
	VisionNeutralInner     = 60.0
	VisionNeutralOuter     = 90.0
	VisionNeutralRadius    = 12.0
	VisionNeutralIntensity = 0.6
)

// Vision Cone - Positive
const (
	VisionPositiveInner     = 90.0
	VisionPositiveOuter     = 150.0
	VisionPositiveRadius    = 20.0
	VisionPositiveIntensity = 1.0
)

// Hearing Gain (dB)
const (
	HearingNegativeGain = -80.0
	HearingNeutralGain  = -6.0
	HearingPositiveGain = 0.0

	// SilenceFloorGain is the level at and below which output is muted
	SilenceFloorGain = -80.0
)
