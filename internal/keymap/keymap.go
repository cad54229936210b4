// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "tracklist"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionOpenFolder, []string{"o"}, "Open folder", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause/resume", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekBack, []string{"left"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek forward", "playback"},
	{ActionSeekTenth, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to n/10", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},

	// Track list
	{ActionMoveUp, []string{"k", "up"}, "Move up", "tracklist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "tracklist"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "tracklist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "tracklist"},
	{ActionSelect, []string{"enter"}, "Play track", "tracklist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Default is the resolver for All.
var Default = NewResolver(All)
