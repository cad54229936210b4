package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// MockOpener is a test double for Speaker. Every path opens successfully
// with DefaultDuration unless configured otherwise.
type MockOpener struct {
	mu              sync.Mutex
	DefaultDuration time.Duration
	durations       map[string]time.Duration
	failures        map[string]error
	opened          []string
	sessions        []*MockSession
}

// NewMockOpener creates a mock opener whose tracks last three minutes.
func NewMockOpener() *MockOpener {
	return &MockOpener{
		DefaultDuration: 3 * time.Minute,
		durations:       make(map[string]time.Duration),
		failures:        make(map[string]error),
	}
}

func (o *MockOpener) Open(path string) (Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	if err := o.failures[path]; err != nil {
		return nil, err
	}
	d, ok := o.durations[path]
	if !ok {
		d = o.DefaultDuration
	}
	s := &MockSession{path: path, duration: d}
	o.sessions = append(o.sessions, s)
	return s, nil
}

// Test helpers

func (o *MockOpener) SetDuration(path string, d time.Duration) {
	o.mu.Lock()
	o.durations[path] = d
	o.mu.Unlock()
}

func (o *MockOpener) SetOpenError(path string, err error) {
	o.mu.Lock()
	o.failures[path] = err
	o.mu.Unlock()
}

// Opened returns every path passed to Open, in order.
func (o *MockOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

// Last returns the most recently opened session, or nil.
func (o *MockOpener) Last() *MockSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.sessions) == 0 {
		return nil
	}
	return o.sessions[len(o.sessions)-1]
}

// Live counts sessions that were opened and not closed.
func (o *MockOpener) Live() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, s := range o.sessions {
		if !s.Closed() {
			n++
		}
	}
	return n
}

// MockSession is a test double for a speaker session.
type MockSession struct {
	mu       sync.Mutex
	path     string
	duration time.Duration
	position time.Duration
	playing  bool
	closed   bool
	seeks    []time.Duration
}

func (s *MockSession) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

func (s *MockSession) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

func (s *MockSession) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *MockSession) SetPosition(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session closed")
	}
	s.seeks = append(s.seeks, pos)
	s.position = max(0, min(pos, s.duration))
	return nil
}

func (s *MockSession) Duration() time.Duration { return s.duration }

func (s *MockSession) Close() error {
	s.mu.Lock()
	s.closed = true
	s.playing = false
	s.mu.Unlock()
	return nil
}

// Test helpers

func (s *MockSession) Path() string { return s.path }

func (s *MockSession) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *MockSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Seeks returns every position passed to SetPosition.
func (s *MockSession) Seeks() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.seeks...)
}

// Advance moves the position forward if playing. It does not clamp at the
// duration, so tests can simulate decoders that report past the end.
func (s *MockSession) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing {
		s.position += d
	}
}
