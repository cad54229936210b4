package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume level (0.0 to 1.0) for the live session and
// every session opened afterwards.
func (s *Speaker) SetVolume(level float64) {
	level = max(0, min(level, 1))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.volumeLevel = level
	if s.current != nil {
		speaker.Lock()
		s.current.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// Volume returns the current volume level (0.0 to 1.0).
func (s *Speaker) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volumeLevel
}

// SetMuted silences output without forgetting the level.
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if s.current != nil {
		speaker.Lock()
		s.current.volume.Silent = muted
		speaker.Unlock()
	}
}

// Muted returns true if audio is muted.
func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// levelToVolume maps a linear level to beep's base-2 Volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
