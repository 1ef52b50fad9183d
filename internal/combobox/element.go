package combobox

import "slices"

type listener struct {
	id int
	t  EventType
	h  Handler
}

// Element is an in-memory EventTarget. Hosts that have no event system of
// their own dispatch into it directly.
type Element struct {
	id        string
	listeners []listener
	nextID    int
}

func NewElement(id string) *Element {
	return &Element{id: id}
}

func (e *Element) ID() string { return e.id }

func (e *Element) Listen(t EventType, h Handler) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener{id: id, t: t, h: h})
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(l listener) bool { return l.id == id })
	}
}

// Dispatch runs every listener registered for ev.Type in registration order.
// An empty ev.Target is filled in with the element's own id.
func (e *Element) Dispatch(ev *Event) {
	if ev.Target == "" {
		ev.Target = e.id
	}
	for _, l := range slices.Clone(e.listeners) {
		if l.t == ev.Type {
			l.h(ev)
		}
	}
}

// ListenerCount reports how many listeners are currently registered.
func (e *Element) ListenerCount() int { return len(e.listeners) }

// TextInput is an in-memory InputElement.
type TextInput struct {
	*Element
	value    string
	mode     string
	selStart int
	selEnd   int
}

func NewTextInput(id, autocompleteMode string) *TextInput {
	if autocompleteMode == "" {
		autocompleteMode = AutocompleteList
	}
	return &TextInput{Element: NewElement(id), mode: autocompleteMode}
}

func (t *TextInput) Value() string { return t.value }

func (t *TextInput) SetValue(v string) {
	t.value = v
	t.selStart, t.selEnd = len(v), len(v)
}

func (t *TextInput) SetSelectionRange(start, end int) {
	start = clamp(start, 0, len(t.value))
	end = clamp(end, start, len(t.value))
	t.selStart, t.selEnd = start, end
}

// Selection returns the highlighted byte range; start == end means none.
func (t *TextInput) Selection() (int, int) { return t.selStart, t.selEnd }

func (t *TextInput) AutocompleteMode() string { return t.mode }

// Type appends s at the caret, replacing any highlighted range first.
func (t *TextInput) Type(s string) {
	v := t.value[:t.selStart] + s + t.value[t.selEnd:]
	caret := t.selStart + len(s)
	t.value = v
	t.selStart, t.selEnd = caret, caret
}

// Backspace deletes the highlighted range, or the byte before the caret.
func (t *TextInput) Backspace() {
	if t.selStart != t.selEnd {
		t.value = t.value[:t.selStart] + t.value[t.selEnd:]
		t.selEnd = t.selStart
		return
	}
	if t.selStart == 0 {
		return
	}
	t.value = t.value[:t.selStart-1] + t.value[t.selStart:]
	t.selStart--
	t.selEnd = t.selStart
}

// Region is a Container holding a fixed set of node ids.
type Region struct {
	ids map[string]struct{}
}

func NewRegion(ids ...string) *Region {
	r := &Region{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		r.Add(id)
	}
	return r
}

func (r *Region) Add(id string) { r.ids[id] = struct{}{} }

func (r *Region) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
