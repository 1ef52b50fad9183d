package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jask/combobox/internal/combobox"
)

// Options configure the terminal combobox.
type Options struct {
	Label           string
	AutoSelectFirst bool
	// Autocomplete is the declared aria-autocomplete mode of the input.
	Autocomplete string
	Source       combobox.Source
	Logger       *slog.Logger
	// OnChange is called after every commit with the selected text.
	OnChange func(selected string)
}

type focusTarget int

const (
	focusInput focusTarget = iota
	focusDone
)

// flushMsg wakes the model so deferred controller work runs even when no
// further input arrives.
type flushMsg struct{}

// Model hosts a combobox.Controller inside a bubbletea program. Key presses
// become keydown/keyup pairs on the input, tab moves focus between the input
// and a Done button, and mouse clicks are hit-tested with bubblezone.
type Model struct {
	ctrl     *combobox.Controller
	input    *inputField
	listbox  *combobox.Element
	document *combobox.Element
	region   *combobox.Region
	queue    *combobox.Queue
	zones    *zone.Manager
	keys     keyMap
	focus    focusTarget
	onChange func(string)
	quitting bool
}

func New(opts Options) (*Model, error) {
	mode := opts.Autocomplete
	if mode == "" {
		mode = combobox.AutocompleteList
	}
	m := &Model{
		queue:    &combobox.Queue{},
		keys:     newKeyMap(),
		zones:    zone.New(),
		onChange: opts.OnChange,
	}
	m.ctrl = combobox.New(combobox.Options{
		Label:           opts.Label,
		AutoSelectFirst: opts.AutoSelectFirst,
		Source:          opts.Source,
		Scheduler:       m.queue,
		Logger:          opts.Logger,
		OnChange:        m.changed,
	})
	id := m.ctrl.View().ID
	m.input = newInputField(id+"-input", mode)
	m.listbox = combobox.NewElement(id + "-listbox")
	m.document = combobox.NewElement(id + "-document")
	m.region = combobox.NewRegion(m.comboboxID(), m.input.ID(), m.listbox.ID())
	if err := m.ctrl.Attach(combobox.Surface{
		Input:    m.input,
		Listbox:  m.listbox,
		Combobox: m.region,
		Document: m.document,
	}); err != nil {
		m.zones.Close()
		return nil, fmt.Errorf("attach combobox: %w", err)
	}
	return m, nil
}

func (m *Model) comboboxID() string { return m.ctrl.View().ID + "-combobox" }

func (m *Model) doneID() string { return m.ctrl.View().ID + "-done" }

func (m *Model) changed(selected string) {
	if m.onChange != nil {
		m.onChange(selected)
	}
}

// Controller exposes the underlying state machine.
func (m *Model) Controller() *combobox.Controller { return m.ctrl }

// Selection is the last committed value.
func (m *Model) Selection() string { return m.ctrl.Selection() }

// Close detaches the controller and stops the zone worker.
func (m *Model) Close() {
	m.ctrl.Detach()
	m.zones.Close()
}

func (m *Model) Init() tea.Cmd {
	m.input.Dispatch(&combobox.Event{Type: combobox.EventFocus})
	return m.input.focus()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// deferred work from the previous event runs before this one
	m.queue.Flush()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case flushMsg:
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	}
	return m, tea.Batch(cmd, m.wake())
}

func (m *Model) wake() tea.Cmd {
	if m.queue.Pending() == 0 {
		return nil
	}
	return func() tea.Msg { return flushMsg{} }
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.focus != focusInput {
		switch {
		case key.Matches(msg, m.keys.Tab):
			return m.focusInput()
		case key.Matches(msg, m.keys.Enter):
			m.quitting = true
			return tea.Quit
		}
		return nil
	}

	k := m.keys.comboboxKey(msg)
	down := &combobox.Event{Type: combobox.EventKeyDown, Key: k}
	m.input.Dispatch(down)

	if k == combobox.KeyTab {
		// focus leaves the input; there is no keyup on it
		if !down.DefaultPrevented() {
			m.blurInput()
		}
		return nil
	}

	var cmd tea.Cmd
	if !down.DefaultPrevented() {
		cmd = m.input.applyDefault(msg, k)
	}
	m.input.Dispatch(&combobox.Event{Type: combobox.EventKeyUp, Key: k})
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	target := m.hitTest(msg)

	var cmd tea.Cmd
	switch {
	case target == m.input.ID() && m.focus != focusInput:
		cmd = m.focusInput()
	case target == m.doneID() && m.focus == focusInput:
		m.blurInput()
	}

	if strings.HasPrefix(target, m.ctrl.View().ID+"-result-item-") {
		m.listbox.Dispatch(&combobox.Event{Type: combobox.EventClick, Target: target})
	}
	m.document.Dispatch(&combobox.Event{Type: combobox.EventClick, Target: target})
	return cmd
}

// hitTest returns the id of the innermost zone under the pointer, or the
// document id when nothing is hit. Entries are checked before the listbox
// that contains them.
func (m *Model) hitTest(msg tea.MouseMsg) string {
	v := m.ctrl.View()
	ids := []string{m.input.ID(), m.doneID()}
	for _, e := range v.Entries {
		ids = append(ids, e.ID)
	}
	if v.Expanded {
		ids = append(ids, v.ListboxID())
	}
	ids = append(ids, m.comboboxID())
	for _, id := range ids {
		if z := m.zones.Get(id); z != nil && z.InBounds(msg) {
			return id
		}
	}
	return m.document.ID()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	cmd := m.input.focus()
	m.input.Dispatch(&combobox.Event{Type: combobox.EventFocus})
	return cmd
}

func (m *Model) blurInput() {
	m.focus = focusDone
	m.input.blur()
	m.input.Dispatch(&combobox.Event{Type: combobox.EventBlur})
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.ctrl.View()

	field := inputStyle
	if m.focus == focusInput {
		field = inputFocused
	}
	head := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(v.Label),
		m.zones.Mark(m.input.ID(), field.Render(m.input.view())),
	)
	head = m.zones.Mark(m.comboboxID(), head)

	sections := []string{head}
	if v.Expanded {
		sections = append(sections, m.renderListbox(v))
	}

	done := buttonStyle
	if m.focus == focusDone {
		done = buttonFocused
	}
	sections = append(sections,
		m.renderSelection(v),
		m.zones.Mark(m.doneID(), done.Render("Done")),
		m.renderHelp(),
	)
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderListbox(v combobox.View) string {
	rows := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		style := resultStyle
		if e.Selected {
			style = focusedStyle
		}
		rows = append(rows, m.zones.Mark(e.ID, style.Render(e.Text)))
	}
	count := annotateStyle.Render(fmt.Sprintf("%d results", v.ResultsCount()))
	box := listboxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append(rows, count)...))
	return m.zones.Mark(v.ListboxID(), box)
}

func (m *Model) renderSelection(v combobox.View) string {
	if v.Selection == "" {
		return helpStyle.Render("nothing selected")
	}
	return "selected: " + selectedStyle.Render(v.Selection)
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
