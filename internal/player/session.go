// Package player opens audio files as playback sessions on the system speaker.
package player

import "time"

// Session is one decoded track bound to the audio output.
//
// A session starts paused. Position and Duration are measured on the decoded
// stream, not on the wall clock, so they stop advancing while paused and
// never exceed Duration once the stream is drained.
type Session interface {
	Play()
	Pause()
	Position() time.Duration
	SetPosition(pos time.Duration) error
	Duration() time.Duration
	Close() error
}

// Opener opens sessions for track files.
type Opener interface {
	Open(path string) (Session, error)
}

// Verify implementations at compile time.
var (
	_ Opener  = (*Speaker)(nil)
	_ Session = (*speakerSession)(nil)
	_ Opener  = (*MockOpener)(nil)
	_ Session = (*MockSession)(nil)
)
