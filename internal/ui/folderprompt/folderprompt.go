// Package folderprompt is the "open folder" popup: a single path input
// confirmed with enter and dismissed with esc.
package folderprompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folderplay/internal/ui/styles"
)

// SubmittedMsg carries the folder entered by the user.
type SubmittedMsg struct {
	Folder string
}

// CanceledMsg is sent when the prompt is dismissed.
type CanceledMsg struct{}

// Model is the folder prompt.
type Model struct {
	input  textinput.Model
	active bool
}

// New creates an inactive prompt.
func New() Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "~/Music/album"
	in.CharLimit = 4096
	return Model{input: in}
}

// Open activates the prompt with initial as the editable value.
func (m *Model) Open(initial string) tea.Cmd {
	m.active = true
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Close deactivates the prompt.
func (m *Model) Close() {
	m.active = false
	m.input.Blur()
}

// Active reports whether the prompt is shown and receiving keys.
func (m Model) Active() bool { return m.active }

// Value returns the current input.
func (m Model) Value() string { return m.input.Value() }

// Update handles keys while the prompt is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.Close()
			return m, func() tea.Msg { return CanceledMsg{} }
		case tea.KeyEnter:
			folder := strings.TrimSpace(m.input.Value())
			m.Close()
			if folder == "" {
				return m, func() tea.Msg { return CanceledMsg{} }
			}
			return m, func() tea.Msg { return SubmittedMsg{Folder: folder} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt box in width cells.
func (m Model) View(width int) string {
	if !m.active {
		return ""
	}
	t := styles.T()
	m.input.Width = max(width-8, 10)

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Open folder")
	hint := t.S().Subtle.Render("Enter: open, Esc: cancel")
	content := title + "\n\n" + m.input.View() + "\n\n" + hint

	return styles.PanelStyle(true).Padding(0, 1).Width(max(width-2, 0)).Render(content)
}
