package playback

import "github.com/llehouerou/folderplay/internal/tracklist"

// StateChange is emitted when the transport state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track is selected, whether or
// not it could be opened.
type TrackChange struct {
	PreviousIndex int
	Index         int
	Track         tracklist.Track
}

// TracksChange is emitted when the track list is replaced.
type TracksChange struct {
	Tracks []tracklist.Track
}

// ErrorEvent is emitted when an operation fails.
type ErrorEvent struct {
	Operation string // e.g. "select", "seek"
	Track     string // track name if applicable
	Err       error
}
