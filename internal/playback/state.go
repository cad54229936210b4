package playback

// State is the transport state.
//
//	┌──────────┐  select/next/prev  ┌──────────┐
//	│  Stopped │ ──────────────────▶│  Playing │◀─┐ select/next/prev
//	└──────────┘                    └──────────┘──┘ (previous session closed)
//	     ▲                            │      ▲
//	     │ stop                 toggle│      │toggle
//	     │                            ▼      │
//	     │                          ┌──────────┐
//	     └──────────────────────────│  Paused  │
//	                 stop           └──────────┘
//
// Stopped is the only state without a live session. Toggle from Stopped
// replays the selected track, or fails if none was ever selected.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a session is open (playing or paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}

// Label is the transport button text: the action a toggle would perform.
func (s State) Label() string {
	switch s {
	case Playing:
		return "Pause"
	case Paused:
		return "Resume"
	default:
		return "Play"
	}
}
