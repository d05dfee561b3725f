package audio

import (
	"log/slog"
	"sync/atomic"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	manager  *SoundManager
	logger   *slog.Logger
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService(logger *slog.Logger) *AudioService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AudioService{
		manager: NewSoundManager(),
		logger:  logger,
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - mute state, a muted service never opens the device
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			s.disabled.Store(true)
		}
	}
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() {
		s.logger.Info("audio muted")
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.disabled.Store(true)
		s.logger.Warn("audio unavailable, continuing silently", "error", err)
		return nil
	}
	s.logger.Info("audio started", "sample_rate", int(sampleRate))
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	s.manager.Cleanup()
	return nil
}

// IsDisabled returns true if audio is unavailable or muted
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the sound manager; it is always usable and stays
// silent while disabled
func (s *AudioService) Manager() *SoundManager {
	return s.manager
}
