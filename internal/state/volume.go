package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/folderplay/internal/db"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume state, or nil if none was saved.
func (m *Manager) GetVolume() (*VolumeState, error) {
	var volume sql.NullFloat64
	var muted bool

	row := m.db.QueryRow(`SELECT volume, muted FROM volume_state WHERE id = 1`)
	err := row.Scan(&volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	return &VolumeState{Volume: dbutil.NullFloat64Or(volume, 1.0), Muted: muted}, nil
}

// SaveVolume persists the volume level to the database.
func (m *Manager) SaveVolume(volume float64, muted bool) error {
	_, err := m.db.Exec(`
		INSERT INTO volume_state (id, volume, muted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, volume, muted)
	return err
}
