// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/folderplay/internal/playback"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackSelect   Op = "play track"
	OpPlaybackToggle   Op = "toggle playback"
	OpPlaybackNext     Op = "skip to next track"
	OpPlaybackPrevious Op = "skip to previous track"
	OpPlaybackSeek     Op = "seek"

	// Folder operations
	OpFolderLoad  Op = "load folder"
	OpFolderWatch Op = "watch folder"

	// Track info
	OpTrackInfo Op = "read track tags"

	// State
	OpStateLoad Op = "load saved state"
	OpStateSave Op = "save state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// opByName maps controller operation names from playback.ErrorEvent.
var opByName = map[string]Op{
	"select":   OpPlaybackSelect,
	"play":     OpPlaybackToggle,
	"next":     OpPlaybackNext,
	"previous": OpPlaybackPrevious,
	"seek":     OpPlaybackSeek,
}

// OpFor returns the Op for a controller operation name.
func OpFor(name string) Op {
	if op, ok := opByName[name]; ok {
		return op
	}
	return Op(name)
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, Describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, Describe(err))
}

// Describe rewords playback sentinel errors for the status line and falls
// back to the error text otherwise.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, playback.ErrEmptyList):
		return "the folder has no playable tracks"
	case errors.Is(err, playback.ErrNoTrackSelected):
		return "select a track first"
	case errors.Is(err, playback.ErrOutOfRange):
		return "position is out of range"
	case errors.Is(err, playback.ErrResourceUnavailable):
		if cause := errors.UnwrapAll(err); cause != nil && cause != err {
			return "track could not be opened (" + cause.Error() + ")"
		}
		return "track could not be opened"
	default:
		return err.Error()
	}
}
