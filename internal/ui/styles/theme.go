// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Accent colors, used for the header gradient and the playing track
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // the selected track, whatever its transport state
	Cursor  lipgloss.Style
	Key     lipgloss.Style // key names in the help view
	Error   lipgloss.Style
	Panel   lipgloss.Style
	Focused lipgloss.Style // panel border when focused
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// PanelStyle returns the bordered panel style for the focus state.
func PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return T().S().Focused
	}
	return T().S().Panel
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Key:     lipgloss.NewStyle().Foreground(t.Secondary),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Panel:   panel,
		Focused: panel.BorderForeground(t.BorderFocus),
	}
}
