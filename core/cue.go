package core

// Cue identifies a sound handle played by the audio backend
type Cue int

const (
	CueRolling    Cue = iota // Dice rattle at roll start
	CueFall                  // Player knocked down during a roll
	CueGoodRolled            // Good die settled
	CueBadRolled             // Bad die settled
	CueSpeakLoop             // Continuous murmur while Speech is Positive
	CueCount
)

var cueNames = [CueCount]string{
	CueRolling:    "rolling",
	CueFall:       "fall",
	CueGoodRolled: "good_rolled",
	CueBadRolled:  "bad_rolled",
	CueSpeakLoop:  "speak_loop",
}

// String returns the cue handle name
func (c Cue) String() string {
	if c < 0 || c >= CueCount {
		return "unknown"
	}
	return cueNames[c]
}
