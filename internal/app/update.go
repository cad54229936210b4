package app

import (
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/config"
	"github.com/llehouerou/folderplay/internal/errmsg"
	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/tracklist"
	"github.com/llehouerou/folderplay/internal/ui/folderprompt"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tracks.SetHeight(m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case folderprompt.SubmittedMsg:
		return m, LoadFolderCmd(resolvePath(msg.Folder))

	case folderprompt.CanceledMsg:
		return m, nil

	case FolderLoadedMsg:
		return m.handleFolderLoaded(msg)

	case FolderChangedMsg:
		return m.handleFolderChanged(msg)

	case WatcherClosedMsg:
		zlog.Debug().Str("folder", msg.Folder).Msg("folder watcher closed")
		return m, nil

	case TrackInfoMsg:
		if t, ok := m.ctrl.CurrentTrack(); ok && t.Path == msg.Path {
			if msg.Err != nil {
				zlog.Debug().Err(msg.Err).Str("path", msg.Path).Msg("read track tags")
			}
			m.info = msg.Info
		}
		return m, nil

	case SubscriptionClosedMsg:
		return m, nil
	}

	return m.handleControllerMsg(msg)
}

// handleControllerMsg applies a controller event and waits for the next.
func (m Model) handleControllerMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case ReadoutMsg:
		m.readout = playback.Readout(msg)
		m.tracks.SetCurrent(m.readout.Index, m.readout.State)

	case StateChangedMsg:
		if msg.Current == playback.Playing {
			m.status = ""
		}
		// The event may be stale: a track can have started since.
		if msg.Current == playback.Stopped && m.pending != nil && m.ctrl.State() == playback.Stopped {
			tracks := m.pending
			m.pending = nil
			m.ctrl.SetTracks(tracks)
			m.tracks.SetTracks(tracks)
		}

	case TrackChangedMsg:
		m.info = nil
		m.tracks.SetCurrent(msg.Index, m.ctrl.State())
		m.saveFolderState()
		cmd = ReadTrackInfoCmd(msg.Track.Path)

	case TracksChangedMsg:
		m.tracks.SetTracks(msg.Tracks)

	case PlaybackErrorMsg:
		m.status = errmsg.FormatWith(errmsg.OpFor(msg.Operation), msg.Track, msg.Err)

	default:
		return m, nil
	}

	return m, tea.Batch(cmd, WatchEvents(m.sub))
}

func (m Model) handleFolderLoaded(msg FolderLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		zlog.Warn().Err(msg.Err).Str("folder", msg.Folder).Msg("load folder")
		m.status = errmsg.FormatWith(errmsg.OpFolderLoad, msg.Folder, msg.Err)
		return m, nil
	}

	zlog.Info().Str("folder", msg.Folder).Int("tracks", len(msg.Tracks)).Msg("folder loaded")
	changed := msg.Folder != m.folder
	m.folder = msg.Folder
	m.pending = nil
	m.info = nil
	m.status = ""
	m.ctrl.SetTracks(msg.Tracks)
	m.tracks.SetTracks(msg.Tracks)

	if m.restoreName != "" {
		m.tracks.SelectName(m.restoreName)
		m.restoreName = ""
	}
	m.saveFolderState()

	if !m.watch || (!changed && m.watcher != nil) {
		return m, nil
	}
	return m, m.startWatcher()
}

func (m Model) handleFolderChanged(msg FolderChangedMsg) (tea.Model, tea.Cmd) {
	if m.watcher == nil || msg.Folder != m.folder {
		return m, nil
	}
	next := WatchFolder(m.watcher)

	if sameTracks(msg.Tracks, m.ctrl.Tracks()) {
		return m, next
	}
	if m.ctrl.State().IsActive() {
		m.pending = msg.Tracks
		zlog.Debug().Int("tracks", len(msg.Tracks)).Msg("folder changed during playback, reload deferred")
		return m, next
	}

	m.pending = nil
	m.ctrl.SetTracks(msg.Tracks)
	m.tracks.SetTracks(msg.Tracks)
	return m, next
}

// startWatcher replaces the folder watcher with one on the current folder.
func (m *Model) startWatcher() tea.Cmd {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			zlog.Debug().Err(err).Msg("close folder watcher")
		}
		m.watcher = nil
	}

	w, err := tracklist.Watch(m.folder)
	if err != nil {
		zlog.Warn().Err(err).Str("folder", m.folder).Msg("watch folder")
		m.status = errmsg.FormatWith(errmsg.OpFolderWatch, m.folder, err)
		return nil
	}
	m.watcher = w
	return WatchFolder(w)
}

func sameTracks(a, b []tracklist.Track) bool {
	return slices.Equal(a, b)
}

// resolvePath expands ~ and makes p absolute so the saved folder does not
// depend on the working directory.
func resolvePath(p string) string {
	p = config.ExpandPath(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
