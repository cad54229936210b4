package app

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/state"
)

// saveFolderState records the folder and the track under the cursor.
// Saves are debounced by the state manager.
func (m *Model) saveFolderState() {
	fs := state.FolderState{Folder: m.folder}
	if t, ok := m.tracks.CursorTrack(); ok {
		fs.SelectedName = t.Name
	}
	m.state.SaveFolder(fs)
}

func (m *Model) saveVolume() {
	if err := m.state.SaveVolume(m.mixer.Volume(), m.mixer.Muted()); err != nil {
		zlog.Warn().Err(err).Msg("save volume")
	}
}
