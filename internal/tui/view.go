package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/skycast/internal/view"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const helpText = "tab: focus • ↑/↓: select • enter: choose • esc: clear • ctrl+c: quit"

// layout records where the clickable parts of View land, in rows
type layout struct {
	listTop    int
	listRows   int
	listStart  int
	buttonTop  int
	buttonRows int
}

// title and a blank line precede the input
const inputRow = 2

// button.Render draws a bordered single-line box
const buttonRows = 3

func (m *Model) layout() layout {
	l := layout{listTop: inputRow + 1, buttonRows: buttonRows}
	if m.widget.ListOpen() {
		start, end := m.widget.Window(m.styles.MaxVisible)
		l.listStart = start
		l.listRows = end - start
	}
	l.buttonTop = l.listTop + l.listRows + 1
	return l
}

// View implements tea.Model; rows must match layout
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("skycast") + "\n\n")
	b.WriteString(m.input.View() + "\n")
	if list := m.widget.RenderList(m.styles); list != "" {
		b.WriteString(list + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.button.Render(m.focus == focusButton) + "\n")

	if m.loading {
		b.WriteString(subtleStyle.Render("Loading...") + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.snapshot != nil {
		b.WriteString(view.RenderSnapshot(m.snapshot) + "\n")
	}

	b.WriteString("\n" + subtleStyle.Render(helpText))
	return b.String()
}
