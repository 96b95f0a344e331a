package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// owner mimics a controlled parent that echoes every update back
type owner struct {
	widget   *Model
	value    string
	updates  []string
	searches []string
}

func newOwned(value string, suggestions []string) *owner {
	o := &owner{value: value}
	o.widget = New(Props{
		Label:       "City",
		Value:       value,
		Suggestions: suggestions,
		Threshold:   3,
		OnUpdate: func(v string) {
			o.updates = append(o.updates, v)
			o.value = v
			o.widget.SetValue(v)
		},
		OnSearch: func(q string) {
			o.searches = append(o.searches, q)
		},
	})
	return o
}

func TestNew_ListAbsentBelowThreshold(t *testing.T) {
	o := newOwned("Ca", words)
	assert.False(t, o.widget.ListOpen())
	assert.Nil(t, o.widget.View().List)
	assert.Equal(t, -1, o.widget.Highlighted())
}

func TestNew_ListAtThreshold(t *testing.T) {
	o := newOwned("Car", words)
	assert.True(t, o.widget.ListOpen())
	assert.Equal(t, []string{"Cart", "Cartoon"}, o.widget.Filtered())
}

func TestChange(t *testing.T) {
	o := newOwned("", words)

	o.widget.Change("Ca")
	assert.Equal(t, []string{"Ca"}, o.updates)
	assert.Empty(t, o.searches)
	assert.False(t, o.widget.ListOpen())

	o.widget.Change("CaR")
	assert.Equal(t, []string{"Ca", "CaR"}, o.updates)
	assert.Equal(t, []string{"car"}, o.searches)
	assert.Equal(t, []string{"Cart", "Cartoon"}, o.widget.Filtered())
}

func TestChange_WithoutCallbacks(t *testing.T) {
	m := New(Props{Suggestions: words})
	assert.NotPanics(t, func() {
		m.Change("Dra")
		m.KeyDown(KeyEscape)
	})
	// uncontrolled echo never happened
	assert.Equal(t, "", m.Value())
}

func TestKeyDown_ArrowDownWraps(t *testing.T) {
	o := newOwned("Car", words)
	m := o.widget

	assert.True(t, m.KeyDown(KeyArrowDown))
	assert.Equal(t, 0, m.Highlighted())
	m.KeyDown(KeyArrowDown)
	assert.Equal(t, 1, m.Highlighted())
	m.KeyDown(KeyArrowDown)
	assert.Equal(t, 0, m.Highlighted())
}

func TestKeyDown_ArrowUpWraps(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	assert.True(t, m.KeyDown(KeyArrowUp))
	assert.Equal(t, 2, m.Highlighted(), "up from -1 goes to last")
	m.KeyDown(KeyArrowUp)
	assert.Equal(t, 1, m.Highlighted())
	m.KeyDown(KeyArrowUp)
	assert.Equal(t, 0, m.Highlighted())
	m.KeyDown(KeyArrowUp)
	assert.Equal(t, 2, m.Highlighted(), "up from 0 goes to last")
}

func TestKeyDown_ArrowsOnEmptyList(t *testing.T) {
	o := newOwned("Xy", words)
	m := o.widget

	assert.True(t, m.KeyDown(KeyArrowDown))
	assert.True(t, m.KeyDown(KeyArrowUp))
	assert.Equal(t, -1, m.Highlighted())
	assert.Empty(t, o.updates)
}

func TestKeyDown_EnterCommitsHighlight(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	m.KeyDown(KeyArrowDown)
	m.KeyDown(KeyArrowDown)
	assert.True(t, m.KeyDown(KeyEnter))

	assert.Equal(t, []string{"Drama"}, o.updates)
	assert.Equal(t, "Drama", m.Value())
	assert.False(t, m.ListOpen(), "echoed commit keeps the list closed")
	assert.Equal(t, -1, m.Highlighted())
	assert.Empty(t, o.searches)
}

func TestKeyDown_EnterWithoutHighlight(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	assert.True(t, m.KeyDown(KeyEnter), "Enter is consumed even without a highlight")
	assert.Empty(t, o.updates)
	assert.Len(t, m.Filtered(), 3)
}

func TestKeyDown_Escape(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget
	m.KeyDown(KeyArrowDown)

	assert.True(t, m.KeyDown(KeyEscape))
	assert.Equal(t, []string{""}, o.updates)
	assert.Equal(t, "", m.Value())
	assert.False(t, m.ListOpen())
	assert.Equal(t, -1, m.Highlighted())
}

func TestKeyDown_Other(t *testing.T) {
	o := newOwned("Dra", words)
	assert.False(t, o.widget.KeyDown(KeyOther))
	assert.Equal(t, -1, o.widget.Highlighted())
}

func TestCommit_ReopensOnLaterChange(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	m.Click(0)
	require.False(t, m.ListOpen())

	m.Change("Draw")
	assert.False(t, m.ListOpen(), "same text as the commit")

	m.Change("Drawi")
	assert.Equal(t, []string{"Drawing"}, m.Filtered())
}

func TestCommit_ReopensOnNewSuggestions(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	m.Click(2)
	require.Equal(t, "Drawing", m.Value())
	require.False(t, m.ListOpen())

	m.SetSuggestions([]string{"Drawing", "Drawings"})
	assert.Equal(t, []string{"Drawing", "Drawings"}, m.Filtered())
}

func TestHoverAndLeave(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget

	m.Hover(1)
	assert.Equal(t, 1, m.Highlighted())
	m.Hover(7)
	assert.Equal(t, 1, m.Highlighted(), "out of range hover is ignored")
	m.Leave()
	assert.Equal(t, -1, m.Highlighted())
}

func TestClick_IgnoresHighlight(t *testing.T) {
	o := newOwned("Car", words)
	m := o.widget
	m.KeyDown(KeyArrowDown)

	m.Click(1)
	assert.Equal(t, []string{"Cartoon"}, o.updates)
	assert.False(t, m.ListOpen())
}

func TestClick_OutOfRange(t *testing.T) {
	o := newOwned("Car", words)
	o.widget.Click(5)
	o.widget.Click(-1)
	assert.Empty(t, o.updates)
}

func TestOptionKeyDown(t *testing.T) {
	o := newOwned("Car", words)
	m := o.widget

	assert.False(t, m.OptionKeyDown(0, KeyArrowDown))
	assert.True(t, m.OptionKeyDown(1, KeyEnter))
	assert.Equal(t, []string{"Cartoon"}, o.updates)
}

func TestHighlightResetsWhenListChanges(t *testing.T) {
	o := newOwned("Dra", words)
	m := o.widget
	m.KeyDown(KeyArrowDown)
	m.KeyDown(KeyArrowDown)
	require.Equal(t, 1, m.Highlighted())

	m.SetSuggestions(append([]string{}, words...))
	assert.Equal(t, 1, m.Highlighted(), "identical list keeps highlight")

	m.Change("Draw")
	assert.Equal(t, -1, m.Highlighted())
}

func TestWindow(t *testing.T) {
	many := []string{"Saba", "Sabah", "Sabadell", "Sabana", "Sabaneta"}
	m := New(Props{Value: "sab", Suggestions: many})

	start, end := m.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = m.Window(3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	m.KeyDown(KeyArrowUp)
	start, end = m.Window(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
}
