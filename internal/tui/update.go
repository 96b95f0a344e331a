package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikitaCOEUR/skycast/internal/autocomplete"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.flush()
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil
	case suggestionsMsg:
		m.handleSuggestions(msg)
		return m, nil
	case weatherMsg:
		m.handleWeather(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusButton {
		switch msg.Type {
		case tea.KeyEnter, tea.KeySpace:
			m.button.Click()
		}
		return m, m.flush()
	}

	switch msg.Type {
	case tea.KeyUp:
		m.widget.KeyDown(autocomplete.KeyArrowUp)
		return m, m.flush()
	case tea.KeyDown:
		m.widget.KeyDown(autocomplete.KeyArrowDown)
		return m, m.flush()
	case tea.KeyEnter:
		m.widget.KeyDown(autocomplete.KeyEnter)
		return m, m.flush()
	case tea.KeyEsc:
		m.widget.KeyDown(autocomplete.KeyEscape)
		return m, m.flush()
	}

	// text editing
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.widget.Change(after)
	}
	if m.input.Value() != m.value {
		m.input.SetValue(m.value)
	}
	return m, m.flush(cmd)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	l := m.layout()
	inList := l.listRows > 0 && msg.Y >= l.listTop && msg.Y < l.listTop+l.listRows
	onButton := msg.Y >= l.buttonTop && msg.Y < l.buttonTop+l.buttonRows

	switch msg.Action {
	case tea.MouseActionMotion:
		if inList {
			m.pointerInList = true
			m.widget.Hover(l.listStart + msg.Y - l.listTop)
		} else if m.pointerInList {
			m.pointerInList = false
			m.widget.Leave()
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		switch {
		case inList:
			m.widget.Click(l.listStart + msg.Y - l.listTop)
			m.pointerInList = false
		case onButton:
			m.button.Click()
		}
	}
}

func (m *Model) handleSuggestions(msg suggestionsMsg) {
	if msg.seq != m.searchSeq {
		m.log.Debug().Str("query", msg.query).Int("seq", msg.seq).Msg("Dropping stale suggestions")
		return
	}
	if msg.err != nil {
		m.log.Warn().Str("query", msg.query).Err(msg.err).Msg("Suggestion lookup failed")
		m.err = msg.err
		return
	}
	m.err = nil
	m.suggestions = msg.names
	m.widget.SetSuggestions(msg.names)
}

func (m *Model) handleWeather(msg weatherMsg) {
	if msg.seq != m.currentSeq {
		m.log.Debug().Str("query", msg.query).Int("seq", msg.seq).Msg("Dropping stale weather")
		return
	}
	m.loading = false
	if msg.err != nil {
		m.log.Warn().Str("query", msg.query).Err(msg.err).Msg("Weather lookup failed")
		m.err = msg.err
		m.snapshot = nil
		return
	}
	m.err = nil
	m.snapshot = msg.snapshot
}
