package player

import (
	"math"
	"testing"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1.0, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-0.3, -10},
	}

	for _, tt := range tests {
		if got := levelToVolume(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSpeaker_SetVolume_ClampsWithoutSession(t *testing.T) {
	s := NewSpeaker()

	s.SetVolume(2)
	if s.Volume() != 1 {
		t.Errorf("Volume() = %v, want 1", s.Volume())
	}
	s.SetVolume(-1)
	if s.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0", s.Volume())
	}
	s.SetMuted(true)
	if !s.Muted() {
		t.Error("Muted() = false, want true")
	}
}
