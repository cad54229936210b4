package app

import "github.com/llehouerou/folderplay/internal/player"

// Mixer is the output level control, implemented by player.Speaker.
type Mixer interface {
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
}

var _ Mixer = (*player.Speaker)(nil)
