// Package button is a stateless push button
package button

import "github.com/charmbracelet/lipgloss"

// Button holds a label and a click handler. The zero value of Disabled
// means enabled.
type Button struct {
	Label    string
	Disabled bool
	OnClick  func()
}

// Node is the semantic view of a button
type Node struct {
	Role     string
	Label    string
	Disabled bool
}

var (
	enabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 2)
	disabledStyle = enabledStyle.
			Foreground(lipgloss.Color("8")).
			BorderForeground(lipgloss.Color("8"))
)

// Click invokes OnClick once unless the button is disabled.
// It reports whether the handler ran.
func (b *Button) Click() bool {
	if b.Disabled || b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

// View returns the semantic node
func (b *Button) View() Node {
	return Node{Role: "button", Label: b.Label, Disabled: b.Disabled}
}

// Render draws the button; focus reverses an enabled button's colours
func (b *Button) Render(focused bool) string {
	style := enabledStyle
	if b.Disabled {
		style = disabledStyle
	} else if focused {
		style = style.Reverse(true)
	}
	return style.Render(b.Label)
}
