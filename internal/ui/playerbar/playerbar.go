// Package playerbar renders the transport panel: the play button label,
// the current track and the progress line.
package playerbar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
	"github.com/llehouerou/folderplay/internal/ui"
	"github.com/llehouerou/folderplay/internal/ui/render"
	"github.com/llehouerou/folderplay/internal/ui/styles"
)

// Height is the number of terminal rows the bar occupies.
const Height = 4

// progressRow is the row of the progress line, counted from the top border.
const progressRow = 2

// frame is the cells taken on each side by the border and padding.
const frame = 2

// State holds everything needed to render the player bar.
type State struct {
	Readout playback.Readout
	Info    *player.TrackInfo // tags of the selected track, may be nil
	Volume  float64
	Muted   bool
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	inner := max(width-2*frame, 0)

	st := styles.T().S()
	label := statusSymbol(s.Readout.State) + " " + s.Readout.Label()
	right := strings.TrimSpace(s.Info.SizeString() + "  " + volumeString(s.Volume, s.Muted))
	avail := inner - render.Width(label) - 2 - len(right) - 1

	left := st.Title.Render(label) + "  " + trackLine(s, avail)
	content := render.Row(left, st.Muted.Render(right), inner) + "\n" +
		RenderProgressBar(s.Readout, inner)

	return styles.PanelStyle(false).Padding(0, 1).Width(max(width-ui.BorderWidth, 0)).Render(content)
}

// FractionAt converts a click at column x and row y, both relative to the
// bar's top-left corner, into a track fraction. It reports false when the
// click misses the progress bar.
func FractionAt(total time.Duration, width, x, y int) (float64, bool) {
	if y != progressRow {
		return 0, false
	}
	l := layoutFor(total, width-2*frame)
	if l.width < ui.MinProgressBarWidth {
		return 0, false
	}
	col := x - frame - l.start
	if col < 0 || col >= l.width {
		return 0, false
	}
	return float64(col) / float64(l.width-1), true
}

func statusSymbol(st playback.State) string {
	switch st {
	case playback.Playing:
		return "▶"
	case playback.Paused:
		return "⏸"
	default:
		return "■"
	}
}

// trackLine describes the selected track in at most maxWidth cells,
// preferring tags over the file name.
func trackLine(s State, maxWidth int) string {
	st := styles.T().S()
	if maxWidth <= 0 {
		return ""
	}
	if !s.Readout.HasTrack() {
		return st.Subtle.Render(render.Truncate("No track selected", maxWidth))
	}

	info := s.Info
	if info == nil || info.Title == "" {
		return st.Playing.Render(render.Truncate(s.Readout.TrackName, maxWidth))
	}

	var parts []string
	if info.Artist != "" {
		parts = append(parts, info.Artist)
	}
	if info.Album != "" {
		parts = append(parts, info.Album)
	}
	if info.Year > 0 {
		parts = append(parts, strconv.Itoa(info.Year))
	}

	title := render.Truncate(info.Title, maxWidth)
	line := st.Playing.Render(title)
	if rest := maxWidth - render.Width(title) - 3; len(parts) > 0 && rest > 0 {
		line += "   " + st.Muted.Render(render.Truncate(strings.Join(parts, " · "), rest))
	}
	return line
}

func volumeString(volume float64, muted bool) string {
	if muted {
		return "muted"
	}
	return fmt.Sprintf("vol %d%%", int(math.Round(volume*100)))
}
