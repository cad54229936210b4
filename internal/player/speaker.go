package player

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"
)

// Speaker opens sessions on the process-wide beep speaker.
//
// The speaker is initialized lazily at the sample rate of the first track
// opened; later tracks with a different rate are resampled. Speaker does not
// enforce a single live session itself, that is the caller's contract.
type Speaker struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate

	volumeLevel float64
	muted       bool
	current     *speakerSession
}

// NewSpeaker returns a Speaker at full volume.
func NewSpeaker() *Speaker {
	return &Speaker{volumeLevel: 1}
}

// Open decodes path and queues it on the speaker, paused.
func (s *Speaker) Open(path string) (Session, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsMusicFile(path) {
		return nil, errors.Newf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := decode(f, ext)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return nil, errors.Wrap(err, "init speaker")
		}
		s.sampleRate = format.SampleRate
		s.initialized = true
		zlog.Debug().Int("sample_rate", int(s.sampleRate)).Msg("speaker initialized")
	}

	sess := s.newSession(f, streamer, format)
	speaker.Play(sess.out)
	return sess, nil
}

// newSession builds the paused stream chain for one decoded track. The
// caller queues sess.out on the speaker.
func (s *Speaker) newSession(f *os.File, streamer beep.StreamSeekCloser, format beep.Format) *speakerSession {
	sess := &speakerSession{
		owner:     s,
		file:      f,
		streamer:  streamer,
		format:    format,
		outRate:   format.SampleRate,
		resampled: s.initialized && format.SampleRate != s.sampleRate,
	}
	if sess.resampled {
		sess.outRate = s.sampleRate
	}
	sess.ctrl = &beep.Ctrl{Streamer: sess.source(), Paused: true}
	sess.volume = &effects.Volume{
		Streamer: sess.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.volumeLevel),
		Silent:   s.muted,
	}
	sess.out = keepAlive{sess.volume}
	s.current = sess
	return sess
}

func (s *Speaker) release(sess *speakerSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == sess {
		s.current = nil
	}
}

type speakerSession struct {
	owner     *Speaker
	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	outRate   beep.SampleRate
	resampled bool
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	out       beep.Streamer
	closed    bool
}

// source returns the decoder converted to the speaker's sample rate.
func (ss *speakerSession) source() beep.Streamer {
	if !ss.resampled {
		return ss.streamer
	}
	return beep.Resample(4, ss.format.SampleRate, ss.outRate, ss.streamer)
}

// keepAlive pads a finished track with silence instead of reporting it
// drained, so the mixer keeps it queued and a later seek is audible.
type keepAlive struct {
	s beep.Streamer
}

func (k keepAlive) Stream(samples [][2]float64) (int, bool) {
	n, _ := k.s.Stream(samples)
	clear(samples[n:])
	return len(samples), true
}

func (k keepAlive) Err() error { return k.s.Err() }

func (ss *speakerSession) Play() {
	speaker.Lock()
	ss.ctrl.Paused = false
	speaker.Unlock()
}

func (ss *speakerSession) Pause() {
	speaker.Lock()
	ss.ctrl.Paused = true
	speaker.Unlock()
}

func (ss *speakerSession) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	if ss.closed {
		return 0
	}
	return ss.format.SampleRate.D(ss.streamer.Position())
}

func (ss *speakerSession) SetPosition(pos time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	if ss.closed {
		return errors.New("session closed")
	}
	n := ss.format.SampleRate.N(pos)
	n = max(0, min(n, ss.streamer.Len()))
	if err := ss.streamer.Seek(n); err != nil {
		return err
	}
	// A resampler that hit the end stays ended; start a fresh one.
	if ss.resampled {
		ss.ctrl.Streamer = ss.source()
	}
	return nil
}

func (ss *speakerSession) Duration() time.Duration {
	return ss.format.SampleRate.D(ss.streamer.Len())
}

func (ss *speakerSession) Close() error {
	if ss.closed {
		return nil
	}
	// Only one session is ever queued, so clearing the speaker drops exactly this one.
	speaker.Clear()

	speaker.Lock()
	ss.closed = true
	speaker.Unlock()

	err := ss.streamer.Close()
	// Decoders that own the file have already closed it.
	if ferr := ss.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) && err == nil {
		err = ferr
	}
	ss.owner.release(ss)
	return err
}
