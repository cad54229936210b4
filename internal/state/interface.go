package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetFolder() (*FolderState, error)
	SaveFolder(state FolderState)
	GetVolume() (*VolumeState, error)
	SaveVolume(volume float64, muted bool) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
