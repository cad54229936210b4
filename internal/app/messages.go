// Package app is the bubbletea program: it turns keys and mouse clicks into
// controller calls and renders the controller's events.
package app

import (
	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/tracklist"
)

// FolderLoadedMsg carries the result of scanning a folder.
type FolderLoadedMsg struct {
	Folder string
	Tracks []tracklist.Track
	Err    error
}

// FolderChangedMsg is a reload delivered by the folder watcher.
type FolderChangedMsg struct {
	Folder string
	Tracks []tracklist.Track
}

// WatcherClosedMsg is sent when a folder watcher's update channel closes.
type WatcherClosedMsg struct {
	Folder string
}

// TrackInfoMsg carries tags read for the selected track.
type TrackInfoMsg struct {
	Path string
	Info *player.TrackInfo
	Err  error
}

// Controller events, one message type per subscription channel.

// StateChangedMsg wraps playback.StateChange.
type StateChangedMsg playback.StateChange

// TrackChangedMsg wraps playback.TrackChange.
type TrackChangedMsg playback.TrackChange

// TracksChangedMsg wraps playback.TracksChange.
type TracksChangedMsg playback.TracksChange

// ReadoutMsg carries a refreshed readout.
type ReadoutMsg playback.Readout

// PlaybackErrorMsg wraps playback.ErrorEvent.
type PlaybackErrorMsg playback.ErrorEvent

// SubscriptionClosedMsg is sent once the controller has been closed.
type SubscriptionClosedMsg struct{}
