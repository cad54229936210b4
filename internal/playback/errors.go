package playback

import "github.com/cockroachdb/errors"

// Errors returned by Controller operations. Match with errors.Is; the
// returned errors carry the index or track name as context.
var (
	ErrOutOfRange          = errors.New("out of range")
	ErrEmptyList           = errors.New("track list is empty")
	ErrResourceUnavailable = errors.New("track unavailable")
	ErrNoTrackSelected     = errors.New("no track selected")
)
