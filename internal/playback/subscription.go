package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
//
// Sends never block the controller: state, track and error events are
// dropped when the buffer is full, and ReadoutChanged keeps only the newest
// readouts since each one supersedes the last.
type Subscription struct {
	StateChanged   <-chan StateChange
	TrackChanged   <-chan TrackChange
	TracksChanged  <-chan TracksChange
	ReadoutChanged <-chan Readout
	Error          <-chan ErrorEvent
	Done           <-chan struct{}

	stateCh   chan StateChange
	trackCh   chan TrackChange
	tracksCh  chan TracksChange
	readoutCh chan Readout
	errorCh   chan ErrorEvent
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan StateChange, eventBufferSize),
		trackCh:   make(chan TrackChange, eventBufferSize),
		tracksCh:  make(chan TracksChange, eventBufferSize),
		readoutCh: make(chan Readout, eventBufferSize),
		errorCh:   make(chan ErrorEvent, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.TracksChanged = s.tracksCh
	s.ReadoutChanged = s.readoutCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendTracks(e TracksChange) {
	select {
	case s.tracksCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

// sendReadout drops the oldest queued readout when the buffer is full.
func (s *Subscription) sendReadout(r Readout) {
	select {
	case s.readoutCh <- r:
		return
	default:
	}
	select {
	case <-s.readoutCh:
	default:
	}
	select {
	case s.readoutCh <- r:
	default:
	}
}
