package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/folderplay/internal/db"
)

// FolderState is the folder being played and the track under the cursor.
type FolderState struct {
	Folder       string
	SelectedName string
}

func getFolder(db *sql.DB) (*FolderState, error) {
	row := db.QueryRow(`SELECT folder, selected_name FROM folder_state WHERE id = 1`)

	var state FolderState
	var selectedName sql.NullString
	err := row.Scan(&state.Folder, &selectedName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.SelectedName = dbutil.NullStringValue(selectedName)
	return &state, nil
}

func saveFolder(db *sql.DB, state FolderState) error {
	_, err := db.Exec(`
		INSERT INTO folder_state (id, folder, selected_name)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			folder = excluded.folder,
			selected_name = excluded.selected_name
	`, state.Folder, state.SelectedName)
	return err
}
