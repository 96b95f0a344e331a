// Package tui is the interactive container: it owns the input value,
// the suggestions and the weather snapshot, and wires the autocomplete
// widget and the button to the lookup service.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikitaCOEUR/skycast/internal/autocomplete"
	"github.com/NikitaCOEUR/skycast/internal/button"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/weather"
)

const (
	inputLabel  = "Enter a city"
	buttonLabel = "View Weather"
)

// Lookup is the data side of the container
type Lookup interface {
	Suggest(ctx context.Context, q string) ([]string, error)
	Current(ctx context.Context, q string) (*weather.Snapshot, error)
}

// Options tunes the container
type Options struct {
	Threshold  int
	MaxVisible int
	Timeout    time.Duration // per lookup; zero means none
	Logger     *logger.Logger
}

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

// suggestionsMsg carries the result of a Suggest lookup
type suggestionsMsg struct {
	seq   int
	query string
	names []string
	err   error
}

// weatherMsg carries the result of a Current lookup
type weatherMsg struct {
	seq      int
	query    string
	snapshot *weather.Snapshot
	err      error
}

// Model is the bubbletea model of the lookup screen
type Model struct {
	lookup  Lookup
	timeout time.Duration
	log     *logger.Logger

	input  textinput.Model
	widget *autocomplete.Model
	button *button.Button
	styles autocomplete.Styles

	value       string
	suggestions []string
	snapshot    *weather.Snapshot
	err         error
	loading     bool

	focus         focusArea
	pointerInList bool

	// latest issued lookup per kind; older responses are dropped
	searchSeq  int
	currentSeq int

	// commands queued by widget callbacks during one Update
	pending []tea.Cmd
}

// New creates the container model
func New(lookup Lookup, opts Options) *Model {
	m := &Model{
		lookup:  lookup,
		timeout: opts.Timeout,
		log:     opts.Logger,
		styles:  autocomplete.DefaultStyles(),
	}
	if m.log == nil {
		m.log = logger.Discard()
	}
	m.log = m.log.Component("tui")
	m.styles.MaxVisible = opts.MaxVisible

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = inputLabel
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	m.input = ti

	m.widget = autocomplete.New(autocomplete.Props{
		Label:     inputLabel,
		Threshold: opts.Threshold,
		OnUpdate:  m.onUpdate,
		OnSearch:  m.onSearch,
	})
	m.button = &button.Button{Label: buttonLabel, OnClick: m.onViewWeather}
	return m
}

// Value returns the controlled input value
func (m *Model) Value() string { return m.value }

// Suggestions returns the de-duplicated suggestions last received
func (m *Model) Suggestions() []string { return m.suggestions }

// Snapshot returns the weather currently shown, nil for none
func (m *Model) Snapshot() *weather.Snapshot { return m.snapshot }

// Err returns the last lookup error, nil once a lookup succeeds
func (m *Model) Err() error { return m.err }

// Widget exposes the autocomplete state
func (m *Model) Widget() *autocomplete.Model { return m.widget }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) onUpdate(v string) {
	m.value = v
	m.widget.SetValue(v)
	if m.input.Value() != v {
		m.input.SetValue(v)
	}
}

func (m *Model) onSearch(q string) {
	m.searchSeq++
	m.pending = append(m.pending, m.searchCmd(m.searchSeq, q))
}

func (m *Model) onViewWeather() {
	m.currentSeq++
	if strings.TrimSpace(m.value) == "" {
		m.snapshot = nil
		m.err = nil
		m.loading = false
		return
	}
	m.loading = true
	m.pending = append(m.pending, m.currentCmd(m.currentSeq, m.value))
}

func (m *Model) lookupContext() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *Model) searchCmd(seq int, q string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.lookupContext()
		defer cancel()
		names, err := m.lookup.Suggest(ctx, q)
		return suggestionsMsg{seq: seq, query: q, names: names, err: err}
	}
}

func (m *Model) currentCmd(seq int, q string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.lookupContext()
		defer cancel()
		snap, err := m.lookup.Current(ctx, q)
		return weatherMsg{seq: seq, query: q, snapshot: snap, err: err}
	}
}

// flush returns the commands queued since the last call
func (m *Model) flush(extra ...tea.Cmd) tea.Cmd {
	cmds := append(m.pending, extra...)
	m.pending = nil

	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
