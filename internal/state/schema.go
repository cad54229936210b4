package state

import (
	"database/sql"

	dbutil "github.com/llehouerou/folderplay/internal/db"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS folder_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				folder TEXT NOT NULL,
				selected_name TEXT
			);

			CREATE TABLE IF NOT EXISTS volume_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				volume REAL,
				muted INTEGER NOT NULL DEFAULT 0
			);
		`)
		if err != nil {
			return err
		}

		// Set initial version if not exists
		_, err = tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
