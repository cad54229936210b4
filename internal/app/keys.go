package app

import (
	"math"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/keymap"
	"github.com/llehouerou/folderplay/internal/ui/playerbar"
)

// handleKey routes a key press. The folder prompt and the help overlay take
// keys first.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	key := msg.String()
	action := m.keys.Resolve(key)

	if m.help {
		if action == keymap.ActionQuit {
			return m, tea.Quit
		}
		m.help = false
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help = true
		return m, nil
	case keymap.ActionOpenFolder:
		return m, m.prompt.Open(m.folder)
	}

	if m.handlePlaybackAction(action, key) {
		return m, nil
	}
	if m.tracks.HandleAction(action) {
		m.saveFolderState()
	}
	return m, nil
}

// handlePlaybackAction calls into the controller. Failures reach the status
// line through the controller's error events, so returned errors are only
// logged here.
func (m *Model) handlePlaybackAction(action keymap.Action, key string) bool {
	var err error

	switch action {
	case keymap.ActionPlayPause:
		err = m.togglePlayPause()
	case keymap.ActionStop:
		m.ctrl.Stop()
	case keymap.ActionNextTrack:
		err = m.ctrl.Next()
	case keymap.ActionPrevTrack:
		err = m.ctrl.Previous()
	case keymap.ActionSelect:
		err = m.ctrl.SelectTrack(m.tracks.Cursor())
	case keymap.ActionSeekForward:
		err = m.seekBy(m.seekStep)
	case keymap.ActionSeekBack:
		err = m.seekBy(-m.seekStep)
	case keymap.ActionSeekTenth:
		n, convErr := strconv.Atoi(key)
		if convErr != nil {
			return true
		}
		err = m.ctrl.SeekToFraction(float64(n) / 10)
	case keymap.ActionVolumeUp:
		m.setVolume(m.mixer.Volume() + volumeStep)
	case keymap.ActionVolumeDown:
		m.setVolume(m.mixer.Volume() - volumeStep)
	case keymap.ActionToggleMute:
		m.mixer.SetMuted(!m.mixer.Muted())
		m.saveVolume()
	default:
		return false
	}

	if err != nil {
		zlog.Debug().Err(err).Str("action", string(action)).Msg("playback action")
	}
	return true
}

// togglePlayPause starts the track under the cursor when nothing has been
// selected yet.
func (m *Model) togglePlayPause() error {
	if _, ok := m.ctrl.CurrentTrack(); !ok && len(m.tracks.Tracks()) > 0 {
		return m.ctrl.SelectTrack(m.tracks.Cursor())
	}
	return m.ctrl.TogglePlayPause()
}

// seekBy moves by delta of the track from the live position. The result
// is clamped to the track.
func (m *Model) seekBy(delta float64) error {
	total := m.ctrl.Readout().Total
	if total <= 0 {
		return nil
	}
	f := float64(m.ctrl.Position())/float64(total) + delta
	return m.ctrl.SeekToFraction(math.Max(0, math.Min(f, 1)))
}

func (m *Model) setVolume(level float64) {
	// Round to whole steps so repeated presses land on 0 and 1 exactly.
	level = math.Round(level/volumeStep) * volumeStep
	m.mixer.SetVolume(math.Max(0, math.Min(level, 1)))
	m.saveVolume()
}

// handleMouse seeks on a click in the progress bar, plays a clicked track
// and scrolls the list with the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() || m.help {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.tracks.HandleAction(keymap.ActionMoveUp)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.tracks.HandleAction(keymap.ActionMoveDown)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if barTop := m.height - playerbar.Height; msg.Y >= barTop {
		if f, ok := playerbar.FractionAt(m.readout.Total, m.width, msg.X, msg.Y-barTop); ok {
			if err := m.ctrl.SeekToFraction(f); err != nil {
				zlog.Debug().Err(err).Msg("seek from click")
			}
		}
		return m, nil
	}

	if i, ok := m.tracks.IndexAt(msg.Y - listTop); ok {
		if err := m.ctrl.SelectTrack(i); err != nil {
			zlog.Debug().Err(err).Int("index", i).Msg("select from click")
		}
	}
	return m, nil
}
