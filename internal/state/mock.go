package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	folder *FolderState
	volume *VolumeState
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetFolder() (*FolderState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.folder, nil
}

func (m *Mock) SaveFolder(state FolderState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folder = &state
	m.saves++
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = &VolumeState{Volume: volume, Muted: muted}
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetFolder(state *FolderState) {
	m.mu.Lock()
	m.folder = state
	m.mu.Unlock()
}

func (m *Mock) FolderSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
