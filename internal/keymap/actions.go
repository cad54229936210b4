package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionOpenFolder Action = "open_folder"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionSeekTenth   Action = "seek_tenth" // 0-9: jump to n/10 of the track

	// Volume actions
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"

	// Track list navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - play the track under the cursor
)
