package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "01 - Intro.mp3", "01 - Intro.mp3"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "a\nb", "ab"},
		{"escape dropped", "a\x1b[31mb", "a[31mb"},
		{"invalid byte dropped", "a\xffb", "ab"},
		{"nbsp to space", "a\u00a0b", "a b"},
		{"unicode kept", "Café 日本", "Café 日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"zero width", "hello", 0, ""},
		{"empty string", "", 10, ""},
		{"wide characters", "日本語の曲", 5, "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 4, "abc…"},
		{"abcd", 4, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Fit(tt.input, tt.width); got != tt.want {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if lipgloss.Width(got) != 20 {
		t.Errorf("width = %d, want 20", lipgloss.Width(got))
	}
	if got[:4] != "left" || got[len(got)-5:] != "right" {
		t.Errorf("Row() = %q", got)
	}
}

func TestRow_KeepsOneSpace(t *testing.T) {
	if got := Row("left", "right", 5); got != "left right" {
		t.Errorf("Row() = %q, want %q", got, "left right")
	}
}
