// Package playback owns the transport state machine: which track is
// selected, the single open audio session, and the timers derived from it.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/tracklist"
)

// Controller drives one audio session at a time over an ordered track list.
//
// All operations are serialized by one mutex; callers may invoke them from
// any goroutine. The readout is recomputed only by Tick and by the
// operations themselves, and SeekToFraction is the only path that moves the
// session position, so the two never feed each other.
type Controller struct {
	mu sync.Mutex

	opener  player.Opener
	tracks  []tracklist.Track
	current int

	state    State
	session  player.Session
	resumeAt time.Duration
	readout  Readout

	subs   []*Subscription
	subsMu sync.RWMutex
	closed bool
}

// New creates a stopped controller with an empty track list.
func New(opener player.Opener) *Controller {
	return &Controller{
		opener:  opener,
		current: -1,
		readout: Readout{Index: -1},
	}
}

// SetTracks replaces the track list. Any playback is stopped and the
// selection cleared.
func (c *Controller) SetTracks(tracks []tracklist.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.tracks = append([]tracklist.Track(nil), tracks...)
	c.current = -1
	c.readout = Readout{Index: -1}

	zlog.Info().Int("tracks", len(c.tracks)).Msg("track list replaced")
	c.publish(func(s *Subscription) {
		s.sendTracks(TracksChange{Tracks: append([]tracklist.Track(nil), c.tracks...)})
		s.sendReadout(c.readout)
	})
}

// SelectTrack closes any open session and starts the track at index.
func (c *Controller) SelectTrack(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(index, "select")
}

// TogglePlayPause pauses, resumes, or (when stopped) replays the selected track.
func (c *Controller) TogglePlayPause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Playing:
		c.resumeAt = c.session.Position()
		c.session.Pause()
		c.readout = c.readout.withPosition(c.resumeAt, c.session.Duration())
		c.setStateLocked(Paused)
		zlog.Debug().Dur("position", c.resumeAt).Msg("paused")
		return nil

	case Paused:
		if err := c.session.SetPosition(c.resumeAt); err != nil {
			zlog.Warn().Err(err).Dur("position", c.resumeAt).Msg("restore position on resume")
		}
		c.session.Play()
		c.setStateLocked(Playing)
		zlog.Debug().Dur("position", c.resumeAt).Msg("resumed")
		return nil

	case Stopped:
	}

	if c.current < 0 || c.current >= len(c.tracks) {
		c.emitErrorLocked("play", "", ErrNoTrackSelected)
		return ErrNoTrackSelected
	}
	return c.selectLocked(c.current, "play")
}

// Stop closes the session and zeroes the timers. Stopping twice is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Next starts the following track, wrapping to the first.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.tracks)
	if n == 0 {
		c.emitErrorLocked("next", "", ErrEmptyList)
		return ErrEmptyList
	}
	// With nothing selected, current is -1 and this lands on 0.
	return c.selectLocked((c.current+1)%n, "next")
}

// Previous starts the preceding track, wrapping to the last.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.tracks)
	if n == 0 {
		c.emitErrorLocked("previous", "", ErrEmptyList)
		return ErrEmptyList
	}
	i := n - 1
	if c.current >= 0 {
		i = (c.current - 1 + n) % n
	}
	return c.selectLocked(i, "previous")
}

// SeekToFraction moves the session to f of the track's duration. It is a
// no-op when nothing is open. A paused session stays paused and resumes
// from the new position.
func (c *Controller) SeekToFraction(f float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if math.IsNaN(f) || f < 0 || f > 1 {
		return errors.Wrapf(ErrOutOfRange, "seek fraction %v", f)
	}
	if c.session == nil {
		return nil
	}

	total := c.session.Duration()
	target := time.Duration(f * float64(total))
	if err := c.session.SetPosition(target); err != nil {
		err = errors.Wrapf(err, "seek %q to %v", c.readout.TrackName, target)
		c.emitErrorLocked("seek", c.readout.TrackName, err)
		return err
	}
	if c.state == Paused {
		c.resumeAt = target
	}

	c.readout = c.readout.withPosition(target, total)
	c.publish(func(s *Subscription) { s.sendReadout(c.readout) })
	return nil
}

// Tick refreshes the timers from the live session. It does nothing unless
// playing, and never advances to the next track at the end.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Playing {
		return
	}
	c.readout = c.readout.withPosition(c.session.Position(), c.session.Duration())
	c.publish(func(s *Subscription) { s.sendReadout(c.readout) })
}

// State returns the transport state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Readout returns the latest readout.
func (c *Controller) Readout() Readout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readout
}

// Position queries the live session, bypassing the tick cadence.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return c.session.Position()
}

// Tracks returns a copy of the track list.
func (c *Controller) Tracks() []tracklist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tracklist.Track(nil), c.tracks...)
}

// CurrentTrack returns the selected track, if any.
func (c *Controller) CurrentTrack() (tracklist.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current < 0 || c.current >= len(c.tracks) {
		return tracklist.Track{}, false
	}
	return c.tracks[c.current], true
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops playback and ends all subscriptions.
func (c *Controller) Close() error {
	c.Stop()

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	return nil
}

func (c *Controller) selectLocked(index int, op string) error {
	if index < 0 || index >= len(c.tracks) {
		err := errors.Wrapf(ErrOutOfRange, "track index %d of %d", index, len(c.tracks))
		c.emitErrorLocked(op, "", err)
		return err
	}

	prevIndex := c.current
	c.closeSessionLocked()

	track := c.tracks[index]
	c.current = index
	c.readout = Readout{Index: index, TrackName: track.Name}
	if prevIndex != index {
		c.publish(func(s *Subscription) {
			s.sendTrack(TrackChange{PreviousIndex: prevIndex, Index: index, Track: track})
		})
	}

	sess, err := c.opener.Open(track.Path)
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "open %q", track.Name), ErrResourceUnavailable)
		zlog.Warn().Err(err).Int("index", index).Str("track", track.Name).Msg("open track")
		c.setStateLocked(Stopped)
		c.emitErrorLocked(op, track.Name, err)
		return err
	}

	c.session = sess
	c.resumeAt = 0
	sess.Play()
	c.readout = c.readout.withPosition(0, sess.Duration())
	c.setStateLocked(Playing)

	zlog.Info().Int("index", index).Str("track", track.Name).Dur("duration", c.readout.Total).Msg("playing")
	return nil
}

func (c *Controller) stopLocked() {
	if c.state == Stopped && c.session == nil {
		return
	}
	c.closeSessionLocked()
	c.resumeAt = 0
	c.setStateLocked(Stopped)
	zlog.Debug().Str("track", c.readout.TrackName).Msg("stopped")
}

func (c *Controller) closeSessionLocked() {
	if c.session == nil {
		return
	}
	if err := c.session.Close(); err != nil {
		zlog.Debug().Err(err).Msg("close session")
	}
	c.session = nil
}

// setStateLocked records the new state, keeps the readout consistent with
// it and notifies subscribers. The readout is always re-sent because the
// timers may have moved even when the state did not.
func (c *Controller) setStateLocked(next State) {
	prev := c.state
	c.state = next
	if next == Stopped {
		c.readout = c.readout.cleared()
	}
	c.readout.State = next

	c.publish(func(s *Subscription) {
		if prev != next {
			s.sendState(StateChange{Previous: prev, Current: next})
		}
		s.sendReadout(c.readout)
	})
}

func (c *Controller) emitErrorLocked(op, track string, err error) {
	c.publish(func(s *Subscription) {
		s.sendError(ErrorEvent{Operation: op, Track: track, Err: err})
	})
}

func (c *Controller) publish(send func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		send(sub)
	}
}
