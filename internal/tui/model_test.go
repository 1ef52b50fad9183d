package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/jask/combobox/internal/combobox"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Source == nil {
		opts.Source = combobox.Static{"Apple", "Apricot", "Banana"}
	}
	if opts.Label == "" {
		opts.Label = "Fruit"
	}
	m, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.Init()
	return m
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func runes(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

// zoneOf renders the model and waits for the zone worker to record id.
func zoneOf(t *testing.T, m *Model, id string) *zone.ZoneInfo {
	t.Helper()
	m.View()
	var z *zone.ZoneInfo
	require.Eventually(t, func() bool {
		z = m.zones.Get(id)
		return z != nil && !z.IsZero()
	}, time.Second, 5*time.Millisecond, "zone %s", id)
	return z
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestTypingFiltersAndArrowsNavigate(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("ap")...)

	ctrl := m.Controller()
	require.True(t, ctrl.IsOpen())
	require.Equal(t, []string{"Apple", "Apricot"}, ctrl.Suggestions())
	require.Equal(t, "ap", m.input.Value())

	send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, ctrl.ActiveIndex())

	send(m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 1, ctrl.ActiveIndex())

	view := m.View()
	require.Contains(t, view, "Apricot")
	require.Contains(t, view, "2 results")
}

func TestEnterCommitsAndNotifies(t *testing.T) {
	var changed []string
	m := newTestModel(t, Options{AutoSelectFirst: true, OnChange: func(s string) { changed = append(changed, s) }})

	send(m, runes("b")...)
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "Banana", m.Selection())
	require.Empty(t, m.input.Value())
	require.False(t, m.Controller().IsOpen())
	require.Equal(t, []string{"Banana"}, changed)
	require.Contains(t, m.View(), "selected: ")
}

func TestEscapeClearsOnFlush(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("ap")...)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd, "a wake-up is scheduled for the deferred clear")
	require.False(t, m.Controller().IsOpen())
	require.Equal(t, "ap", m.input.Value())

	send(m, flushMsg{})
	require.Empty(t, m.input.Value())
}

func TestTabCommitsAndMovesFocus(t *testing.T) {
	m := newTestModel(t, Options{AutoSelectFirst: true})
	send(m, runes("apr")...)
	send(m, tea.KeyMsg{Type: tea.KeyTab})

	require.Equal(t, "Apricot", m.Selection())
	require.Equal(t, focusDone, m.focus)
	require.False(t, m.input.focused())

	// typing while the input is unfocused does nothing
	send(m, runes("b")...)
	require.Empty(t, m.input.Value())

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusInput, m.focus)
	require.True(t, m.input.focused())
}

func TestBlurCommitsActiveEntry(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("b")...)
	send(m, tea.KeyMsg{Type: tea.KeyDown})

	m.blurInput()
	require.Equal(t, "Banana", m.Selection())
	require.False(t, m.Controller().IsOpen())
}

func TestInlineAutocompleteOvertypes(t *testing.T) {
	m := newTestModel(t, Options{AutoSelectFirst: true, Autocomplete: combobox.AutocompleteBoth})
	require.True(t, m.Controller().View().Inline)

	send(m, runes("a")...)
	require.Equal(t, "Apple", m.input.Value())
	head, hl, tail, ok := m.input.selection()
	require.True(t, ok)
	require.Equal(t, []string{"A", "pple", ""}, []string{head, hl, tail})

	send(m, runes("pr")...)
	require.Equal(t, "Apricot", m.input.Value())

	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "Apr", m.input.Value(), "backspace removes the completed tail only")
}

func TestInlineDownShowsAll(t *testing.T) {
	m := newTestModel(t, Options{Autocomplete: combobox.AutocompleteBoth})
	send(m, tea.KeyMsg{Type: tea.KeyDown})

	require.Equal(t, []string{"Apple", "Apricot", "Banana"}, m.Controller().Suggestions())
	require.Equal(t, "Apple", m.input.Value())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, m.View())
}

func TestViewShowsLabelAndHelp(t *testing.T) {
	m := newTestModel(t, Options{Label: "Pick a fruit"})
	view := m.View()
	require.Contains(t, view, "Pick a fruit")
	require.Contains(t, view, "nothing selected")
	require.True(t, strings.Contains(view, "enter select"))
}

func TestCommitKeepsEntryTextVerbatim(t *testing.T) {
	long := "Ab" + strings.Repeat("x", 300)
	m := newTestModel(t, Options{
		AutoSelectFirst: true,
		Source:          combobox.Static{long, "Ac\tdef"},
	})

	send(m, runes("ab")...)
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, long, m.Selection(), "longer than the field's char limit")
	require.Empty(t, m.input.Value())

	send(m, runes("ac")...)
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Ac\tdef", m.Selection(), "the field would sanitize the tab")
}

func TestClickEntryCommits(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("ap")...)

	entry := m.Controller().View().Entries[1]
	z := zoneOf(t, m, entry.ID)
	click(m, z.StartX, z.StartY)

	require.Equal(t, "Apricot", m.Selection())
	require.False(t, m.Controller().IsOpen())
	require.Empty(t, m.input.Value())
}

func TestClickInsideListboxKeepsItOpen(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("ap")...)

	z := zoneOf(t, m, m.Controller().View().ListboxID())
	// the results count line, then the bottom border
	click(m, z.StartX+2, z.EndY-1)
	require.True(t, m.Controller().IsOpen())
	click(m, z.StartX, z.EndY)
	require.True(t, m.Controller().IsOpen())
	require.Empty(t, m.Selection())
}

func TestClickOutsideCloses(t *testing.T) {
	m := newTestModel(t, Options{})
	send(m, runes("ap")...)
	zoneOf(t, m, m.Controller().View().ListboxID())

	click(m, 500, 500)
	require.False(t, m.Controller().IsOpen())
	require.Empty(t, m.Selection())
	require.Equal(t, "ap", m.input.Value())
}

func TestClickMovesFocus(t *testing.T) {
	m := newTestModel(t, Options{})

	done := zoneOf(t, m, m.doneID())
	click(m, done.StartX, done.StartY)
	require.Equal(t, focusDone, m.focus)
	require.False(t, m.input.focused())

	in := zoneOf(t, m, m.input.ID())
	click(m, in.StartX, in.StartY)
	require.Equal(t, focusInput, m.focus)
	require.True(t, m.input.focused())
}
