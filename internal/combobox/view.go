package combobox

import "strconv"

// View is the render-ready projection of controller state. Rendering
// adapters paint it; nothing in it feeds back into the controller.
type View struct {
	ID               string
	Label            string
	InputID          string
	Query            string
	Expanded         bool
	ActiveDescendant string
	Entries          []EntryView
	Selection        string
	Inline           bool
}

type EntryView struct {
	ID       string
	Text     string
	Selected bool
}

func (c *Controller) View() View {
	v := View{
		ID:               c.id,
		Label:            c.opts.Label,
		Expanded:         c.popup.IsOpen(),
		ActiveDescendant: c.popup.ActiveDescendant(),
		Selection:        c.selected,
		Inline:           c.inline,
	}
	if in := c.surface.Input; in != nil {
		v.InputID = in.ID()
		v.Query = in.Value()
	}
	for _, e := range c.popup.Entries() {
		v.Entries = append(v.Entries, EntryView{ID: e.ID, Text: e.Text, Selected: e.Active})
	}
	return v
}

func (v View) ResultsCount() int { return len(v.Entries) }

func (v View) ListboxID() string { return v.ID + "-listbox" }

func (v View) ComboboxAttrs() map[string]string {
	return map[string]string{
		"role":          "combobox",
		"aria-expanded": strconv.FormatBool(v.Expanded),
		"aria-owns":     v.ListboxID(),
		"aria-haspopup": "listbox",
	}
}

func (v View) InputAttrs() map[string]string {
	mode := AutocompleteList
	if v.Inline {
		mode = AutocompleteBoth
	}
	return map[string]string{
		"aria-autocomplete":     mode,
		"aria-controls":         v.ListboxID(),
		"aria-activedescendant": v.ActiveDescendant,
	}
}

func (e EntryView) Attrs() map[string]string {
	attrs := map[string]string{
		"id":   e.ID,
		"role": "option",
	}
	if e.Selected {
		attrs["aria-selected"] = "true"
	}
	return attrs
}
