//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
)

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(ctrl Controller, volume VolumeControl) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("folderplay", &rootAdapter{}, newPlayerAdapter(ctrl, volume)),
	}

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "folderplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	ctrl   Controller
	volume VolumeControl
}

func newPlayerAdapter(ctrl Controller, volume VolumeControl) *playerAdapter {
	return &playerAdapter{ctrl: ctrl, volume: volume}
}

func (p *playerAdapter) Next() error {
	return p.ctrl.Next()
}

func (p *playerAdapter) Previous() error {
	return p.ctrl.Previous()
}

func (p *playerAdapter) Pause() error {
	if p.ctrl.State().CanPause() {
		return p.ctrl.TogglePlayPause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	return p.ctrl.TogglePlayPause()
}

func (p *playerAdapter) Stop() error {
	p.ctrl.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	if p.ctrl.State() == playback.Playing {
		return nil
	}
	return p.ctrl.TogglePlayPause()
}

// Seek moves relative to the current position. Seeking past either end
// clamps to it.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	total := p.ctrl.Readout().Total
	if total <= 0 {
		return nil
	}
	target := p.ctrl.Position() + time.Duration(offset)*time.Microsecond
	return p.ctrl.SeekToFraction(fraction(target, total))
}

// SetPosition moves to an absolute position. Out-of-range positions are
// ignored, as MPRIS requires.
func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	total := p.ctrl.Readout().Total
	pos := time.Duration(position) * time.Microsecond
	if total <= 0 || pos < 0 || pos > total {
		return nil
	}
	return p.ctrl.SeekToFraction(fraction(pos, total))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctrl.State() {
	case playback.Playing:
		return types.PlaybackStatusPlaying, nil
	case playback.Paused:
		return types.PlaybackStatusPaused, nil
	case playback.Stopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.ctrl.CurrentTrack()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Path)),
		Length:  types.Microseconds(p.ctrl.Readout().Total.Microseconds()),
		Title:   track.Name,
	}

	if info, err := player.ReadTrackInfo(track.Path); err == nil {
		meta.Title = info.Title
		meta.Album = info.Album
		meta.TrackNumber = info.Track
		if info.Artist != "" {
			meta.Artist = []string{info.Artist}
		}
	}

	if artPath := FindCover(filepath.Dir(track.Path)); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.volume == nil {
		return 1.0, nil
	}
	return p.volume.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	if p.volume != nil {
		p.volume.SetVolume(level)
	}
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// The list wraps, so next and previous are available whenever it is not empty.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.ctrl.Tracks()) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.ctrl.Tracks()) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	_, ok := p.ctrl.CurrentTrack()
	return ok, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctrl.State().CanPause(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.ctrl.State().IsActive(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func fraction(pos, total time.Duration) float64 {
	f := float64(pos) / float64(total)
	return max(0, min(f, 1))
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
