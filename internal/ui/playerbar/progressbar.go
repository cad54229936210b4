package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/ui"
	"github.com/llehouerou/folderplay/internal/ui/render"
	"github.com/llehouerou/folderplay/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// barLayout places the bar inside a progress line.
//
//	1:23  ▓▓▓▓▓░░░░░░░  -2:34
type barLayout struct {
	timeWidth int // cells reserved for the elapsed time
	start     int // first bar cell
	width     int // bar cells
}

// layoutFor sizes the time columns from the track length so the bar does
// not shift while the elapsed time grows.
func layoutFor(total time.Duration, width int) barLayout {
	tw := max(len(FormatDuration(total)), 4)
	return barLayout{
		timeWidth: tw,
		start:     tw + 2,
		width:     width - 2*tw - 1 - 4,
	}
}

// RenderProgressBar renders elapsed time, a block bar and the remaining
// countdown into width cells.
func RenderProgressBar(r playback.Readout, width int) string {
	l := layoutFor(r.Total, width)
	elapsed := fmt.Sprintf("%*s", l.timeWidth, FormatDuration(r.Elapsed))
	remaining := fmt.Sprintf("%*s", l.timeWidth+1, "-"+FormatDuration(r.Remaining))

	if l.width < ui.MinProgressBarWidth {
		return render.Truncate(FormatDuration(r.Elapsed)+" / "+FormatDuration(r.Total), width)
	}

	filled := min(int(float64(l.width)*max(r.Progress, 0)), l.width)
	s := styles.T().S()
	bar := s.Playing.Render(strings.Repeat(filledBlock, filled)) +
		s.Subtle.Render(strings.Repeat(emptyBlock, l.width-filled))

	return s.Muted.Render(elapsed) + "  " + bar + "  " + s.Muted.Render(remaining)
}

// FormatDuration formats d as m:ss.
func FormatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
