// Package trackview renders the folder's track list with a movable cursor
// and a marker on the selected track.
package trackview

import (
	"strings"

	"github.com/llehouerou/folderplay/internal/keymap"
	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/tracklist"
	"github.com/llehouerou/folderplay/internal/ui"
	"github.com/llehouerou/folderplay/internal/ui/render"
	"github.com/llehouerou/folderplay/internal/ui/styles"
)

// Model is the track list view. The zero value is not usable; call New.
type Model struct {
	tracks  []tracklist.Track
	cursor  cursor
	height  int
	current int // controller's selected index, -1 for none
	state   playback.State
}

// New creates an empty track list view.
func New() Model {
	return Model{
		cursor:  cursor{margin: ui.ScrollMargin},
		current: -1,
	}
}

// SetTracks replaces the list. The cursor stays on the same file when it
// still exists and is clamped otherwise.
func (m *Model) SetTracks(tracks []tracklist.Track) {
	name := ""
	if t, ok := m.CursorTrack(); ok {
		name = t.Name
	}
	m.tracks = tracks
	m.current = -1
	if name == "" || !m.SelectName(name) {
		m.cursor.jump(m.cursor.pos, len(m.tracks), m.height)
	}
}

// Tracks returns the displayed list.
func (m Model) Tracks() []tracklist.Track { return m.tracks }

// SetHeight sets the number of visible rows.
func (m *Model) SetHeight(height int) {
	m.height = max(height, 0)
	m.cursor.ensureVisible(len(m.tracks), m.height)
}

// SetCurrent marks the controller's selected track. The cursor follows it.
func (m *Model) SetCurrent(index int, state playback.State) {
	m.state = state
	if index == m.current {
		return
	}
	m.current = index
	if index >= 0 && index < len(m.tracks) {
		m.cursor.jump(index, len(m.tracks), m.height)
	}
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int { return m.cursor.pos }

// CursorTrack returns the track under the cursor.
func (m Model) CursorTrack() (tracklist.Track, bool) {
	if m.cursor.pos >= len(m.tracks) {
		return tracklist.Track{}, false
	}
	return m.tracks[m.cursor.pos], true
}

// SelectName moves the cursor to the track with the given name.
func (m *Model) SelectName(name string) bool {
	for i, t := range m.tracks {
		if t.Name == name {
			m.cursor.jump(i, len(m.tracks), m.height)
			return true
		}
	}
	return false
}

// HandleAction applies a navigation action and reports whether it was one.
func (m *Model) HandleAction(a keymap.Action) bool {
	n := len(m.tracks)
	switch a {
	case keymap.ActionMoveUp:
		m.cursor.move(-1, n, m.height)
	case keymap.ActionMoveDown:
		m.cursor.move(1, n, m.height)
	case keymap.ActionJumpStart:
		m.cursor.jump(0, n, m.height)
	case keymap.ActionJumpEnd:
		m.cursor.jump(n-1, n, m.height)
	default:
		return false
	}
	return true
}

// IndexAt returns the track shown on the given visible row.
func (m Model) IndexAt(row int) (int, bool) {
	start, end := m.cursor.visibleRange(len(m.tracks), m.height)
	i := start + row
	if row < 0 || i >= end {
		return 0, false
	}
	return i, true
}

// View renders exactly height rows of width cells.
func (m Model) View(width int) string {
	if m.height == 0 || width <= 0 {
		return ""
	}
	s := styles.T().S()

	lines := make([]string, 0, m.height)
	if len(m.tracks) == 0 {
		lines = append(lines, s.Subtle.Render(render.Fit("No playable files in this folder", width)))
	}

	start, end := m.cursor.visibleRange(len(m.tracks), m.height)
	for i := start; i < end; i++ {
		line := render.Fit(m.marker(i)+m.tracks[i].Name, width)
		switch {
		case i == m.cursor.pos:
			line = s.Cursor.Render(line)
		case i == m.current:
			line = s.Playing.Render(line)
		default:
			line = s.Base.Render(line)
		}
		lines = append(lines, line)
	}

	for len(lines) < m.height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) marker(i int) string {
	if i != m.current {
		return "  "
	}
	switch m.state {
	case playback.Playing:
		return "▶ "
	case playback.Paused:
		return "⏸ "
	default:
		return "■ "
	}
}
