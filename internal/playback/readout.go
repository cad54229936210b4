package playback

import "time"

// Readout is the observable playback state handed to the UI.
type Readout struct {
	State     State
	Index     int // -1 when nothing is selected
	TrackName string
	Elapsed   time.Duration
	Remaining time.Duration
	Total     time.Duration
	Progress  float64 // 0..1
}

// Label returns the transport button text.
func (r Readout) Label() string { return r.State.Label() }

// HasTrack reports whether a track is selected.
func (r Readout) HasTrack() bool { return r.Index >= 0 }

// withPosition recomputes the derived timers for pos within the track.
// Once pos reaches the end the timers pin to elapsed=total, remaining=0,
// progress=1.
func (r Readout) withPosition(pos, total time.Duration) Readout {
	r.Total = max(total, 0)
	pos = max(pos, 0)

	switch {
	case r.Total == 0:
		r.Elapsed, r.Remaining, r.Progress = pos, 0, 0
	case pos >= r.Total:
		r.Elapsed, r.Remaining, r.Progress = r.Total, 0, 1
	default:
		r.Elapsed = pos
		r.Remaining = r.Total - pos
		r.Progress = float64(pos) / float64(r.Total)
	}
	return r
}

// cleared zeroes the timers, keeping the selection.
func (r Readout) cleared() Readout {
	return Readout{State: Stopped, Index: r.Index, TrackName: r.TrackName}
}
