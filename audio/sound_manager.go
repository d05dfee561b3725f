package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// speakerLock guards streamers that the speaker goroutine is pulling
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// SoundManager plays cues through a master gain stage
// Every method is safe to call before Initialize; playback is skipped
type SoundManager struct {
	mu          sync.Mutex
	stream      sync.Locker // Guards mixer and master against the output
	mixer       *beep.Mixer
	master      *effects.Volume
	loops       map[core.Cue]*beep.Ctrl
	gainDB      float64
	played      int
	initialized bool
	onSpeaker   bool
}

// NewSoundManager creates a sound manager at unity gain
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		stream: &sync.Mutex{},
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 10},
		loops:  make(map[core.Cue]*beep.Ctrl),
	}
}

// Initialize opens the speaker and starts playing the master stream
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.master)

	sm.stream = speakerLock{}
	sm.onSpeaker = true
	sm.initialized = true
	return nil
}

// InitializeOffline enables playback without a device; the caller pulls
// samples with Render
func (sm *SoundManager) InitializeOffline() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.initialized = true
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.stream.Lock()
	for cue, ctrl := range sm.loops {
		ctrl.Streamer = nil
		delete(sm.loops, cue)
	}
	sm.mixer.Clear()
	sm.stream.Unlock()

	if sm.onSpeaker {
		speaker.Close()
		sm.stream = &sync.Mutex{}
		sm.onSpeaker = false
	}
	sm.initialized = false
}

// PlayCue starts a one-shot cue at volume (0.0-1.0) without blocking
func (sm *SoundManager) PlayCue(cue core.Cue, volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := CueStreamer(cue, sampleRate, volume)
	if s == nil {
		return
	}

	sm.stream.Lock()
	sm.mixer.Add(s)
	sm.stream.Unlock()
	sm.played++
}

// StartLoop attaches a looping cue; a loop already playing is left as is
// Returns false when audio is not initialized
func (sm *SoundManager) StartLoop(cue core.Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	if _, ok := sm.loops[cue]; ok {
		return true
	}

	s := LoopStreamer(cue, sampleRate)
	if s == nil {
		return false
	}

	ctrl := &beep.Ctrl{Streamer: s}
	sm.stream.Lock()
	sm.mixer.Add(ctrl)
	sm.stream.Unlock()
	sm.loops[cue] = ctrl
	return true
}

// StopLoop detaches a looping cue
func (sm *SoundManager) StopLoop(cue core.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl, ok := sm.loops[cue]
	if !ok {
		return
	}

	// Ctrl with a nil streamer reports drained and the mixer drops it
	sm.stream.Lock()
	ctrl.Streamer = nil
	sm.stream.Unlock()
	delete(sm.loops, cue)
}

// SetGain sets the master level in dB, muting at or below the silence floor
func (sm *SoundManager) SetGain(db float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	volume, silent := decibelVolume(db, parameter.SilenceFloorGain)
	sm.stream.Lock()
	sm.master.Volume = volume
	sm.master.Silent = silent
	sm.stream.Unlock()
	sm.gainDB = db
}

// Gain returns the master level in dB
func (sm *SoundManager) Gain() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.gainDB
}

// LoopActive reports whether cue is attached
func (sm *SoundManager) LoopActive(cue core.Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.loops[cue]
	return ok
}

// Played returns the number of one-shot cues started
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Voices returns the number of streamers in the mixer
func (sm *SoundManager) Voices() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stream.Lock()
	defer sm.stream.Unlock()
	return sm.mixer.Len()
}

// IsInitialized reports whether playback is enabled
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Render pulls samples from the master stream in offline mode
func (sm *SoundManager) Render(samples [][2]float64) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized || sm.onSpeaker {
		return 0
	}
	sm.stream.Lock()
	defer sm.stream.Unlock()
	n, _ := sm.master.Stream(samples)
	return n
}
