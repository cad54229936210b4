package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color gradient, one color step
// per grapheme cluster.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	colors := blendColors(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i].Hex()))
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// Header renders the application title followed by a muted subtitle,
// typically the folder being played.
func Header(title, subtitle string) string {
	t := T()
	h := Gradient(title, t.Primary, t.Secondary, true)
	if subtitle == "" {
		return h
	}
	return h + "  " + t.S().Muted.Render(subtitle)
}

func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// blendColors returns size colors from from to to, blended in HCL space.
func blendColors(size int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	if size < 2 {
		return []colorful.Color{c1}
	}
	c2 := toColorful(to)

	colors := make([]colorful.Color, size)
	for i := range size {
		colors[i] = c1.BlendHcl(c2, float64(i)/float64(size-1)).Clamped()
	}
	return colors
}

// toColorful parses a hex lipgloss color. ANSI color numbers fall back to a
// neutral gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
