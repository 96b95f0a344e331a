// Package autocomplete implements a controlled text input with a
// filtered suggestion list, keyboard navigation and pointer selection.
//
// The widget never owns its value. Owners pass it in through Props (or
// SetValue) and receive edits through OnUpdate; OnSearch fires only once
// the input reaches the threshold.
package autocomplete

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Key is a navigation key understood by KeyDown
type Key int

const (
	KeyOther Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// Props is what the owner supplies
type Props struct {
	Label       string
	Value       string
	Suggestions []string
	Threshold   int

	// OnUpdate receives every edit and every committed selection.
	OnUpdate func(value string)
	// OnSearch receives the lowercased value when it reaches Threshold.
	OnSearch func(query string)
}

// Model is the widget state derived from Props
type Model struct {
	props       Props
	filtered    []string
	highlighted int

	// inputs the current filtered list was derived from
	lastValue       string
	lastSuggestions []string
}

// New creates a widget from props
func New(props Props) *Model {
	m := &Model{props: props, highlighted: -1}
	m.refilter()
	return m
}

// SetProps replaces all props, re-deriving the list if value or
// suggestions changed
func (m *Model) SetProps(props Props) {
	m.props = props
	m.derive()
}

// SetValue updates the controlled value
func (m *Model) SetValue(v string) {
	m.props.Value = v
	m.derive()
}

// SetSuggestions updates the suggestion prop
func (m *Model) SetSuggestions(s []string) {
	m.props.Suggestions = s
	m.derive()
}

// Value returns the controlled value last supplied by the owner
func (m *Model) Value() string { return m.props.Value }

// Label returns the placeholder label
func (m *Model) Label() string { return m.props.Label }

// Threshold returns the effective threshold
func (m *Model) Threshold() int {
	if m.props.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.props.Threshold
}

// Filtered returns the currently visible suggestions
func (m *Model) Filtered() []string { return m.filtered }

// Highlighted returns the highlighted index, -1 for none
func (m *Model) Highlighted() int { return m.highlighted }

// ListOpen reports whether the suggestion list is rendered
func (m *Model) ListOpen() bool { return len(m.filtered) > 0 }

func (m *Model) derive() {
	if m.props.Value == m.lastValue && slices.Equal(m.props.Suggestions, m.lastSuggestions) {
		return
	}
	m.refilter()
}

func (m *Model) refilter() {
	m.lastValue = m.props.Value
	m.lastSuggestions = slices.Clone(m.props.Suggestions)

	next := Filter(m.props.Value, m.props.Suggestions, m.Threshold())
	if !slices.Equal(next, m.filtered) {
		m.highlighted = -1
	}
	m.filtered = next
}

// Change handles a keystroke that produced v
func (m *Model) Change(v string) {
	if m.props.OnUpdate != nil {
		m.props.OnUpdate(v)
	}
	if utf8.RuneCountInString(v) >= m.Threshold() && m.props.OnSearch != nil {
		m.props.OnSearch(strings.ToLower(v))
	}
}

// KeyDown applies a navigation key. The result reports whether the
// key was consumed, in which case the caller suppresses its default.
// Enter is always consumed, even when nothing is highlighted.
func (m *Model) KeyDown(k Key) bool {
	n := len(m.filtered)
	switch k {
	case KeyArrowDown:
		if n > 0 {
			m.highlighted = (m.highlighted + 1) % n
		}
		return true
	case KeyArrowUp:
		if n > 0 {
			if m.highlighted <= 0 {
				m.highlighted = n - 1
			} else {
				m.highlighted--
			}
		}
		return true
	case KeyEnter:
		if m.highlighted >= 0 && m.highlighted < n {
			m.commit(m.filtered[m.highlighted])
		}
		return true
	case KeyEscape:
		m.lastValue = ""
		m.filtered = nil
		m.highlighted = -1
		if m.props.OnUpdate != nil {
			m.props.OnUpdate("")
		}
		return true
	}
	return false
}

// Hover highlights option i
func (m *Model) Hover(i int) {
	if i >= 0 && i < len(m.filtered) {
		m.highlighted = i
	}
}

// Leave clears the highlight when the pointer exits the list
func (m *Model) Leave() {
	m.highlighted = -1
}

// Click commits option i regardless of the highlight
func (m *Model) Click(i int) {
	if i >= 0 && i < len(m.filtered) {
		m.commit(m.filtered[i])
	}
}

// OptionKeyDown handles a key pressed while option i has focus
func (m *Model) OptionKeyDown(i int, k Key) bool {
	if k != KeyEnter || i < 0 || i >= len(m.filtered) {
		return false
	}
	m.commit(m.filtered[i])
	return true
}

// commit closes the list and reports s. The echo of s from the owner
// matches lastValue and leaves the list closed.
func (m *Model) commit(s string) {
	m.lastValue = s
	m.filtered = nil
	m.highlighted = -1
	if m.props.OnUpdate != nil {
		m.props.OnUpdate(s)
	}
}

// Window returns the [start, end) slice of the list shown when at most
// rows fit, keeping the highlight in view
func (m *Model) Window(rows int) (int, int) {
	n := len(m.filtered)
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := 0
	if m.highlighted >= rows {
		start = m.highlighted - rows + 1
	}
	return start, start + rows
}
