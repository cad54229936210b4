package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folderplay/internal/playback"
	"github.com/llehouerou/folderplay/internal/player"
)

func playingReadout() playback.Readout {
	return playback.Readout{
		State:     playback.Playing,
		Index:     0,
		TrackName: "01 - intro",
		Elapsed:   90 * time.Second,
		Remaining: 90 * time.Second,
		Total:     3 * time.Minute,
		Progress:  0.5,
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{83 * time.Second, "1:23"},
		{61 * time.Minute, "61:00"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestRenderProgressBar_Half(t *testing.T) {
	got := RenderProgressBar(playingReadout(), 36)

	if w := lipgloss.Width(got); w != 36 {
		t.Errorf("width = %d, want 36", w)
	}
	// 36 - 2*4 - 1 - 4 = 23 bar cells, half of them filled.
	if n := strings.Count(got, filledBlock); n != 11 {
		t.Errorf("filled = %d, want 11", n)
	}
	if n := strings.Count(got, emptyBlock); n != 12 {
		t.Errorf("empty = %d, want 12", n)
	}
	if !strings.Contains(got, "1:30") || !strings.Contains(got, "-1:30") {
		t.Errorf("RenderProgressBar() = %q, want elapsed and remaining", got)
	}
}

func TestRenderProgressBar_Ends(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		filled   int
	}{
		{"start", 0, 0},
		{"end", 1, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := playingReadout()
			r.Progress = tt.progress
			got := RenderProgressBar(r, 36)
			if n := strings.Count(got, filledBlock); n != tt.filled {
				t.Errorf("filled = %d, want %d", n, tt.filled)
			}
		})
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	got := RenderProgressBar(playingReadout(), 12)
	if strings.Contains(got, filledBlock) || strings.Contains(got, emptyBlock) {
		t.Errorf("RenderProgressBar() = %q, want times only", got)
	}
	if lipgloss.Width(got) > 12 {
		t.Errorf("width = %d, want <= 12", lipgloss.Width(got))
	}
}

func TestFractionAt(t *testing.T) {
	// Panel width 40: content 36, bar starts at column 2+6 and is 23 cells.
	tests := []struct {
		name   string
		x, y   int
		want   float64
		wantOK bool
	}{
		{"first cell", 8, progressRow, 0, true},
		{"middle cell", 19, progressRow, 0.5, true},
		{"last cell", 30, progressRow, 1, true},
		{"before bar", 7, progressRow, 0, false},
		{"after bar", 31, progressRow, 0, false},
		{"track row", 19, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FractionAt(3*time.Minute, 40, tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("fraction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFractionAt_TooNarrow(t *testing.T) {
	if _, ok := FractionAt(3*time.Minute, 16, 8, progressRow); ok {
		t.Error("expected no bar in a narrow panel")
	}
}

func TestRender_Labels(t *testing.T) {
	tests := []struct {
		name  string
		state playback.State
		want  string
	}{
		{"playing", playback.Playing, "Pause"},
		{"paused", playback.Paused, "Resume"},
		{"stopped", playback.Stopped, "Play"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := playingReadout()
			r.State = tt.state
			got := Render(State{Readout: r, Volume: 1}, 80)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render() missing label %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestRender_NoTrack(t *testing.T) {
	got := Render(State{Readout: playback.Readout{Index: -1}, Volume: 0.8}, 80)
	if !strings.Contains(got, "No track selected") {
		t.Errorf("Render() = %q, want placeholder", got)
	}
	if !strings.Contains(got, "vol 80%") {
		t.Errorf("Render() = %q, want volume", got)
	}
}

func TestRender_UsesTags(t *testing.T) {
	info := &player.TrackInfo{Title: "Intro", Artist: "The Band", Album: "First", Year: 2001, Size: 4_200_000}
	got := Render(State{Readout: playingReadout(), Info: info, Muted: true}, 100)

	for _, want := range []string{"Intro", "The Band · First · 2001", "4.2 MB", "muted"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "01 - intro") {
		t.Errorf("Render() shows file name despite tags:\n%s", got)
	}
}

func TestRender_Dimensions(t *testing.T) {
	for _, width := range []int{30, 60, 120} {
		got := Render(State{Readout: playingReadout(), Volume: 1}, width)
		lines := strings.Split(got, "\n")
		if len(lines) != Height {
			t.Errorf("width %d: %d lines, want %d", width, len(lines), Height)
		}
		for i, line := range lines {
			if w := lipgloss.Width(line); w != width {
				t.Errorf("width %d: line %d is %d cells", width, i, w)
			}
		}
	}
}
