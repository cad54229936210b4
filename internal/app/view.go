package app

import (
	"strings"

	"github.com/llehouerou/folderplay/internal/keymap"
	"github.com/llehouerou/folderplay/internal/ui"
	"github.com/llehouerou/folderplay/internal/ui/playerbar"
	"github.com/llehouerou/folderplay/internal/ui/render"
	"github.com/llehouerou/folderplay/internal/ui/styles"
)

// Screen rows, top to bottom: header, list panel (bordered), status line,
// player bar.
const (
	headerHeight = 1
	statusHeight = 1
	listTop      = headerHeight + 1 // first track row, below the panel border
	chromeHeight = headerHeight + ui.BorderHeight + statusHeight + playerbar.Height
)

const appName = "folderplay"

const helpKeyWidth = 14

func (m Model) listHeight() int {
	return max(m.height-chromeHeight, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderMain(),
		m.renderStatus(),
		playerbar.Render(playerbar.State{
			Readout: m.readout,
			Info:    m.info,
			Volume:  m.mixer.Volume(),
			Muted:   m.mixer.Muted(),
		}, m.width),
	}
	return enforceHeight(strings.Join(sections, "\n"), m.height)
}

func (m Model) renderHeader() string {
	return styles.Header(appName, render.Truncate(m.folder, max(m.width-len(appName)-2, 0)))
}

// renderMain draws the list panel, or the prompt or help in its place.
func (m Model) renderMain() string {
	inner := max(m.width-ui.BorderWidth, 0)
	h := m.listHeight()

	var content string
	switch {
	case m.prompt.Active():
		content = m.prompt.View(inner)
	case m.help:
		content = renderHelp(m.keys, inner)
	default:
		content = m.tracks.View(inner)
	}

	return styles.PanelStyle(true).
		Width(inner).
		Render(enforceHeight(content, h))
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	if m.status != "" {
		return s.Error.Render(render.Truncate(m.status, m.width))
	}
	hint := m.keys.Label(keymap.ActionHelp) + " help  " + m.keys.Label(keymap.ActionOpenFolder) + " open folder"
	return s.Subtle.Render(render.Truncate(hint, m.width))
}

// helpSections lists the binding contexts in display order.
var helpSections = []struct{ context, title string }{
	{"global", "General"},
	{"playback", "Playback"},
	{"tracklist", "Track list"},
}

func renderHelp(keys *keymap.Resolver, width int) string {
	s := styles.T().S()
	var lines []string
	for _, sec := range helpSections {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.Title.Render(sec.title))
		for _, b := range keymap.ByContext(sec.context) {
			label := render.Fit(keys.Label(b.Action), helpKeyWidth)
			desc := render.Truncate(b.Description, max(width-helpKeyWidth, 0))
			lines = append(lines, s.Key.Render(label)+s.Base.Render(desc))
		}
	}
	return strings.Join(lines, "\n")
}

// enforceHeight pads or cuts view to exactly height lines.
func enforceHeight(view string, height int) string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
