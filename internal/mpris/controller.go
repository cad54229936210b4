package mpris

import (
	"time"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/tracklist"
)

// Controller is the part of *playback.Controller that MPRIS drives.
type Controller interface {
	TogglePlayPause() error
	Stop()
	Next() error
	Previous() error
	SeekToFraction(f float64) error
	State() playback.State
	Readout() playback.Readout
	Position() time.Duration
	Tracks() []tracklist.Track
	CurrentTrack() (tracklist.Track, bool)
}

// VolumeControl is implemented by player.Speaker.
type VolumeControl interface {
	Volume() float64
	SetVolume(level float64)
}

var _ Controller = (*playback.Controller)(nil)
