package playback

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/tracklist"
)

func threeTracks() []tracklist.Track {
	return []tracklist.Track{
		{Name: "alpha", Path: "/music/alpha.mp3"},
		{Name: "bravo", Path: "/music/bravo.mp3"},
		{Name: "charlie", Path: "/music/charlie.mp3"},
	}
}

func newTestController(t *testing.T, tracks []tracklist.Track) (*Controller, *player.MockOpener) {
	t.Helper()
	opener := player.NewMockOpener()
	c := New(opener)
	c.SetTracks(tracks)
	t.Cleanup(func() { _ = c.Close() })
	return c, opener
}

// assertSessionInvariant checks that Stopped holds exactly when no session
// is live, and that at most one session is live.
func assertSessionInvariant(t *testing.T, c *Controller, opener *player.MockOpener) {
	t.Helper()
	live := opener.Live()
	assert.LessOrEqual(t, live, 1, "live sessions")
	if c.State() == Stopped {
		assert.Equal(t, 0, live, "Stopped with a live session")
	} else {
		assert.Equal(t, 1, live, "%v without a live session", c.State())
	}
}

func TestNew_StartsStopped(t *testing.T) {
	c := New(player.NewMockOpener())

	assert.Equal(t, Stopped, c.State())
	r := c.Readout()
	assert.Equal(t, -1, r.Index)
	assert.Equal(t, "Play", r.Label())
	assert.Zero(t, r.Progress)
	_, ok := c.CurrentTrack()
	assert.False(t, ok)
	assert.Zero(t, c.Position())
}

func TestSelectTrack_StartsPlaying(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	opener.SetDuration("/music/bravo.mp3", 200*time.Second)

	require.NoError(t, c.SelectTrack(1))

	assert.Equal(t, Playing, c.State())
	r := c.Readout()
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, "bravo", r.TrackName)
	assert.Equal(t, "Pause", r.Label())
	assert.Equal(t, 200*time.Second, r.Total)
	assert.Equal(t, 200*time.Second, r.Remaining)
	assert.Zero(t, r.Elapsed)
	assert.Zero(t, r.Progress)

	sess := opener.Last()
	require.NotNil(t, sess)
	assert.Equal(t, "/music/bravo.mp3", sess.Path())
	assert.True(t, sess.Playing())

	track, ok := c.CurrentTrack()
	require.True(t, ok)
	assert.Equal(t, "bravo", track.Name)
	assertSessionInvariant(t, c, opener)
}

func TestSelectTrack_ClosesPreviousSession(t *testing.T) {
	c, opener := newTestController(t, threeTracks())

	require.NoError(t, c.SelectTrack(0))
	first := opener.Last()
	require.NoError(t, c.SelectTrack(2))

	assert.True(t, first.Closed())
	assert.Equal(t, "/music/charlie.mp3", opener.Last().Path())
	assertSessionInvariant(t, c, opener)
}

func TestSelectTrack_FromPausedStartsPlaying(t *testing.T) {
	c, opener := newTestController(t, threeTracks())

	require.NoError(t, c.SelectTrack(0))
	require.NoError(t, c.TogglePlayPause())
	require.Equal(t, Paused, c.State())

	require.NoError(t, c.SelectTrack(1))
	assert.Equal(t, Playing, c.State())
	assertSessionInvariant(t, c, opener)
}

func TestSelectTrack_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"equal to length", 3},
		{"far past end", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, opener := newTestController(t, threeTracks())
			require.NoError(t, c.SelectTrack(1))
			before := c.Readout()

			err := c.SelectTrack(tt.index)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))

			assert.Equal(t, Playing, c.State())
			assert.Equal(t, before, c.Readout())
			assert.Len(t, opener.Opened(), 1)
			assertSessionInvariant(t, c, opener)
		})
	}
}

func TestSelectTrack_OpenFailure(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	cause := errors.New("device busy")
	opener.SetOpenError("/music/bravo.mp3", cause)

	require.NoError(t, c.SelectTrack(0))
	err := c.SelectTrack(1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "bravo")

	assert.Equal(t, Stopped, c.State())
	r := c.Readout()
	assert.Equal(t, 1, r.Index, "failed index stays current")
	assert.Zero(t, r.Progress)
	assert.Zero(t, r.Total)
	assertSessionInvariant(t, c, opener)

	// next moves on from the failed track
	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.Readout().Index)
	assert.Equal(t, Playing, c.State())
}

func TestTogglePlayPause_NothingSelected(t *testing.T) {
	c, opener := newTestController(t, threeTracks())

	err := c.TogglePlayPause()

	assert.True(t, errors.Is(err, ErrNoTrackSelected))
	assert.Equal(t, Stopped, c.State())
	assert.Empty(t, opener.Opened())
}

func TestTogglePlayPause_PauseAndResume(t *testing.T) {
	// Scenario C
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(0))
	sess := opener.Last()

	sess.Advance(42 * time.Second)
	c.Tick()

	require.NoError(t, c.TogglePlayPause())
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, "Resume", c.Readout().Label())
	assert.False(t, sess.Playing())
	assert.Equal(t, 42*time.Second, c.Readout().Elapsed)

	// paused sessions do not advance
	sess.Advance(10 * time.Second)
	c.Tick()
	assert.Equal(t, 42*time.Second, c.Readout().Elapsed)

	require.NoError(t, c.TogglePlayPause())
	assert.Equal(t, Playing, c.State())
	assert.True(t, sess.Playing())
	assert.Equal(t, 42*time.Second, c.Position())
	assert.Equal(t, []time.Duration{42 * time.Second}, sess.Seeks())
	assertSessionInvariant(t, c, opener)
}

func TestTogglePlayPause_FromStoppedReplaysCurrent(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(2))
	opener.Last().Advance(30 * time.Second)
	c.Stop()

	require.NoError(t, c.TogglePlayPause())

	assert.Equal(t, Playing, c.State())
	assert.Equal(t, 2, c.Readout().Index)
	assert.Equal(t, "/music/charlie.mp3", opener.Last().Path())
	assert.Zero(t, c.Position(), "replay starts from the beginning")
	assertSessionInvariant(t, c, opener)
}

func TestStop_Idempotent(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(0))
	opener.Last().Advance(20 * time.Second)
	c.Tick()

	c.Stop()
	once := c.Readout()
	c.Stop()

	assert.Equal(t, once, c.Readout())
	assert.Equal(t, Stopped, c.State())
	assert.Zero(t, once.Elapsed)
	assert.Zero(t, once.Progress)
	assert.Equal(t, "Play", once.Label())
	assert.Equal(t, 0, once.Index, "selection survives stop")
	assertSessionInvariant(t, c, opener)
}

func TestStop_WhenNeverStartedEmitsNothing(t *testing.T) {
	c, _ := newTestController(t, threeTracks())
	sub := c.Subscribe()

	c.Stop()

	select {
	case e := <-sub.StateChanged:
		t.Errorf("unexpected state change %+v", e)
	case r := <-sub.ReadoutChanged:
		t.Errorf("unexpected readout %+v", r)
	default:
	}
}

func TestNext_EmptyList(t *testing.T) {
	// Scenario A
	c, opener := newTestController(t, nil)

	assert.True(t, errors.Is(c.Next(), ErrEmptyList))
	assert.True(t, errors.Is(c.Previous(), ErrEmptyList))
	assert.Equal(t, Stopped, c.State())
	assert.Empty(t, opener.Opened())
}

func TestNext_WrapsAround(t *testing.T) {
	// Scenario B
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(0))

	for range 3 {
		require.NoError(t, c.Next())
		assertSessionInvariant(t, c, opener)
	}

	assert.Equal(t, 0, c.Readout().Index)
	assert.Equal(t, Playing, c.State())
	assert.Equal(t, []string{
		"/music/alpha.mp3",
		"/music/bravo.mp3",
		"/music/charlie.mp3",
		"/music/alpha.mp3",
	}, opener.Opened())
}

func TestPrevious_WrapsAround(t *testing.T) {
	c, _ := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(0))

	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.Readout().Index)
	require.NoError(t, c.Previous())
	assert.Equal(t, 1, c.Readout().Index)
}

func TestNextPrevious_NothingSelected(t *testing.T) {
	c, _ := newTestController(t, threeTracks())
	require.NoError(t, c.Next())
	assert.Equal(t, 0, c.Readout().Index)

	c2, _ := newTestController(t, threeTracks())
	require.NoError(t, c2.Previous())
	assert.Equal(t, 2, c2.Readout().Index)
}

func TestNext_FullCycleReturnsToStart(t *testing.T) {
	for start := range 3 {
		c, _ := newTestController(t, threeTracks())
		require.NoError(t, c.SelectTrack(start))
		for range 3 {
			require.NoError(t, c.Next())
		}
		assert.Equal(t, start, c.Readout().Index)
	}
}

func TestSeekToFraction_SetsPosition(t *testing.T) {
	for _, f := range []float64{0, 0.25, 0.5, 1} {
		c, opener := newTestController(t, threeTracks())
		opener.SetDuration("/music/alpha.mp3", 200*time.Second)
		require.NoError(t, c.SelectTrack(0))

		require.NoError(t, c.SeekToFraction(f))

		want := time.Duration(f * float64(200*time.Second))
		assert.Equal(t, want, c.Position(), "fraction %v", f)
		assert.Equal(t, want, c.Readout().Elapsed, "fraction %v", f)
		assert.InDelta(t, f, c.Readout().Progress, 1e-9)
	}
}

func TestSeekToFraction_OutOfRange(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(0))

	for _, f := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		err := c.SeekToFraction(f)
		assert.True(t, errors.Is(err, ErrOutOfRange), "fraction %v", f)
	}
	assert.Empty(t, opener.Last().Seeks())
}

func TestSeekToFraction_NoSessionIsNoop(t *testing.T) {
	c, _ := newTestController(t, threeTracks())

	require.NoError(t, c.SeekToFraction(0.5))
	assert.Equal(t, Stopped, c.State())
	assert.Zero(t, c.Readout().Progress)
}

func TestSeekToFraction_WhilePausedMovesResumePoint(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	opener.SetDuration("/music/alpha.mp3", 100*time.Second)
	require.NoError(t, c.SelectTrack(0))
	opener.Last().Advance(10 * time.Second)
	require.NoError(t, c.TogglePlayPause())

	require.NoError(t, c.SeekToFraction(0.5))
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 50*time.Second, c.Readout().Elapsed)

	require.NoError(t, c.TogglePlayPause())
	assert.Equal(t, 50*time.Second, c.Position())
}

func TestTick_ProgressMonotonicAndClamped(t *testing.T) {
	// Scenario D
	c, opener := newTestController(t, threeTracks())
	opener.SetDuration("/music/alpha.mp3", 10*time.Second)
	require.NoError(t, c.SelectTrack(0))
	sess := opener.Last()

	prev := 0.0
	for range 15 {
		sess.Advance(time.Second)
		c.Tick()
		r := c.Readout()
		assert.GreaterOrEqual(t, r.Progress, prev)
		assert.LessOrEqual(t, r.Progress, 1.0)
		prev = r.Progress
	}

	r := c.Readout()
	assert.Equal(t, 1.0, r.Progress)
	assert.Zero(t, r.Remaining)
	assert.Equal(t, 10*time.Second, r.Elapsed)
	assert.Equal(t, Playing, c.State(), "no auto-advance")
	assert.Len(t, opener.Opened(), 1)
}

func TestTick_NoopUnlessPlaying(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	c.Tick()
	assert.Zero(t, c.Readout().Elapsed)

	require.NoError(t, c.SelectTrack(0))
	opener.Last().Advance(5 * time.Second)
	c.Stop()
	c.Tick()
	assert.Zero(t, c.Readout().Elapsed)
}

func TestSetTracks_StopsAndClearsSelection(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	require.NoError(t, c.SelectTrack(1))

	c.SetTracks([]tracklist.Track{{Name: "delta", Path: "/other/delta.mp3"}})

	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, -1, c.Readout().Index)
	_, ok := c.CurrentTrack()
	assert.False(t, ok)
	assert.Len(t, c.Tracks(), 1)
	assert.True(t, errors.Is(c.TogglePlayPause(), ErrNoTrackSelected))
	assertSessionInvariant(t, c, opener)
}

func TestTracks_ReturnsCopy(t *testing.T) {
	c, _ := newTestController(t, threeTracks())

	got := c.Tracks()
	got[0].Name = "mutated"

	assert.Equal(t, "alpha", c.Tracks()[0].Name)
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	c, _ := newTestController(t, threeTracks())
	sub := c.Subscribe()

	require.NoError(t, c.SelectTrack(1))

	select {
	case e := <-sub.TrackChanged:
		assert.Equal(t, -1, e.PreviousIndex)
		assert.Equal(t, 1, e.Index)
		assert.Equal(t, "bravo", e.Track.Name)
	default:
		t.Fatal("expected TrackChanged")
	}

	select {
	case e := <-sub.StateChanged:
		assert.Equal(t, StateChange{Previous: Stopped, Current: Playing}, e)
	default:
		t.Fatal("expected StateChanged")
	}

	var last Readout
	for done := false; !done; {
		select {
		case r := <-sub.ReadoutChanged:
			last = r
		default:
			done = true
		}
	}
	assert.Equal(t, Playing, last.State)
	assert.Equal(t, 1, last.Index)
}

func TestSubscribe_ErrorEvents(t *testing.T) {
	c, opener := newTestController(t, threeTracks())
	opener.SetOpenError("/music/alpha.mp3", errors.New("gone"))
	sub := c.Subscribe()

	require.Error(t, c.SelectTrack(0))

	select {
	case e := <-sub.Error:
		assert.Equal(t, "select", e.Operation)
		assert.Equal(t, "alpha", e.Track)
		assert.True(t, errors.Is(e.Err, ErrResourceUnavailable))
	default:
		t.Fatal("expected Error event")
	}
}

func TestSubscribe_TracksChanged(t *testing.T) {
	c, _ := newTestController(t, nil)
	sub := c.Subscribe()

	c.SetTracks(threeTracks())

	select {
	case e := <-sub.TracksChanged:
		assert.Len(t, e.Tracks, 3)
	default:
		t.Fatal("expected TracksChanged")
	}
}

func TestClose_EndsSubscriptions(t *testing.T) {
	opener := player.NewMockOpener()
	c := New(opener)
	c.SetTracks(threeTracks())
	sub := c.Subscribe()
	require.NoError(t, c.SelectTrack(0))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	<-sub.Done
	assert.Equal(t, Stopped, c.State())
	assert.Zero(t, opener.Live())

	late := c.Subscribe()
	<-late.Done
}
