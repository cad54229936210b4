// Package render provides text layout helpers for terminal views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize removes control characters (except tab) and invalid UTF-8 from
// file names and tag values before they reach the terminal.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			return true
		}
	}
	return false
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
// Wide characters count as two cells.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// Width returns the cell width of an unstyled string.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Fit truncates then pads s to exactly width cells.
func Fit(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row places left and right at the edges of width cells with at least one
// space between them. Styled strings are measured without their escapes.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
