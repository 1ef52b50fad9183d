package tui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/combobox/internal/combobox"
)

// inputField adapts a bubbles textinput to combobox.InputElement. The
// textinput has no notion of a highlighted range, so the range set by
// inline autocomplete is tracked here and honored on the next edit.
type inputField struct {
	*combobox.Element
	ti       textinput.Model
	mode     string
	selStart int
	selEnd   int
}

func newInputField(id, mode string) *inputField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to search"
	ti.CharLimit = 256
	return &inputField{Element: combobox.NewElement(id), ti: ti, mode: mode}
}

func (f *inputField) Value() string { return f.ti.Value() }

func (f *inputField) SetValue(v string) {
	f.ti.SetValue(v)
	f.ti.CursorEnd()
	f.selStart, f.selEnd = len(v), len(v)
}

func (f *inputField) SetSelectionRange(start, end int) {
	v := f.ti.Value()
	start = min(max(start, 0), len(v))
	end = min(max(end, start), len(v))
	f.selStart, f.selEnd = start, end
}

func (f *inputField) AutocompleteMode() string { return f.mode }

func (f *inputField) selection() (string, string, string, bool) {
	v := f.ti.Value()
	if f.selStart >= f.selEnd || f.selEnd > len(v) {
		return v, "", "", false
	}
	return v[:f.selStart], v[f.selStart:f.selEnd], v[f.selEnd:], true
}

func (f *inputField) clearSelection() {
	v := f.ti.Value()
	f.selStart, f.selEnd = len(v), len(v)
}

// deleteSelection removes the highlighted range and parks the cursor
// where it started.
func (f *inputField) deleteSelection() bool {
	head, _, tail, ok := f.selection()
	if !ok {
		return false
	}
	f.ti.SetValue(head + tail)
	f.ti.SetCursor(utf8.RuneCountInString(head))
	f.clearSelection()
	return true
}

// applyDefault performs the field's own handling of a key the controller
// did not consume.
func (f *inputField) applyDefault(msg tea.KeyMsg, k combobox.Key) tea.Cmd {
	switch {
	case k == combobox.KeyBackspace || k == combobox.KeyDelete:
		if f.deleteSelection() {
			return nil
		}
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		f.deleteSelection()
	default:
		f.clearSelection()
	}
	var cmd tea.Cmd
	f.ti, cmd = f.ti.Update(msg)
	return cmd
}

func (f *inputField) focus() tea.Cmd { return f.ti.Focus() }

func (f *inputField) blur() { f.ti.Blur() }

func (f *inputField) focused() bool { return f.ti.Focused() }

func (f *inputField) view() string {
	head, hl, tail, ok := f.selection()
	if !ok {
		return f.ti.View()
	}
	return head + completedStyle.Render(hl) + tail
}
