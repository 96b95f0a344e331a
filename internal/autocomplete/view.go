package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// InputAriaLabel names the text input for assistive tooling
	InputAriaLabel = "Autocomplete input"
	// ListTestID identifies the suggestion list in rendered trees
	ListTestID = "suggestions-list"
)

// Tree is the semantic render tree of the widget
type Tree struct {
	Input InputNode
	List  *ListNode // nil when the list is absent
}

// InputNode describes the text input
type InputNode struct {
	Role        string
	Placeholder string
	AriaLabel   string
	Value       string
}

// ListNode describes the suggestion list
type ListNode struct {
	Role    string
	TestID  string
	Options []OptionNode
}

// OptionNode describes one suggestion
type OptionNode struct {
	Role     string
	Text     string
	Selected bool
	Index    int
}

// View builds the semantic tree for the current state
func (m *Model) View() Tree {
	tree := Tree{
		Input: InputNode{
			Role:        "combobox",
			Placeholder: m.props.Label,
			AriaLabel:   InputAriaLabel,
			Value:       m.props.Value,
		},
	}
	if !m.ListOpen() {
		return tree
	}

	list := &ListNode{Role: "listbox", TestID: ListTestID}
	for i, s := range m.filtered {
		list.Options = append(list.Options, OptionNode{
			Role:     "option",
			Text:     s,
			Selected: i == m.highlighted,
			Index:    i,
		})
	}
	tree.List = list
	return tree
}

// Styles controls terminal rendering
type Styles struct {
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Option      lipgloss.Style
	Selected    lipgloss.Style
	MaxVisible  int
}

// DefaultStyles returns the stock palette
func DefaultStyles() Styles {
	return Styles{
		Input:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Option:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")).PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("14")).
			Bold(true).
			PaddingLeft(2),
	}
}

// Render draws the input line followed by the list
func (m *Model) Render(st Styles) string {
	var input string
	if m.props.Value == "" {
		input = st.Placeholder.Render(m.props.Label)
	} else {
		input = st.Input.Render(m.props.Value)
	}

	list := m.RenderList(st)
	if list == "" {
		return input
	}
	return input + "\n" + list
}

// RenderList draws the visible window of the list, one option per line.
// It returns an empty string when the list is absent.
func (m *Model) RenderList(st Styles) string {
	if !m.ListOpen() {
		return ""
	}

	start, end := m.Window(st.MaxVisible)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := st.Option
		if i == m.highlighted {
			style = st.Selected
		}
		rows = append(rows, style.Render(m.filtered[i]))
	}
	return strings.Join(rows, "\n")
}
