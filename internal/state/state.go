// Package state remembers what folderplay was doing between runs: the last
// folder and selected track, and the volume. The track list itself is never
// stored; it is rescanned from the folder.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "folderplay"
	dbFileName = "folderplay.db"
)

var saveDebounce = 500 * time.Millisecond

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *FolderState
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve state path")
	}
	return OpenPath(dbPath)
}

// OpenPath opens (creating if needed) the database at dbPath.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create state directory for %s", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "open state db %s", dbPath)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init state schema")
	}

	zlog.Debug().Str("path", dbPath).Msg("state db opened")
	return &Manager{db: db}, nil
}

// Close flushes any pending folder save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		if err := saveFolder(m.db, *pending); err != nil {
			zlog.Warn().Err(err).Msg("flush folder state")
		}
	}

	return m.db.Close()
}

// GetFolder returns the saved folder state, or nil on first run.
func (m *Manager) GetFolder() (*FolderState, error) {
	return getFolder(m.db)
}

// SaveFolder records the folder state after a short quiet period, so rapid
// cursor movement results in one write.
func (m *Manager) SaveFolder(state FolderState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := saveFolder(m.db, *pending); err != nil {
				zlog.Warn().Err(err).Str("folder", pending.Folder).Msg("save folder state")
			}
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
