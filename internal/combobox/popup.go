package combobox

import "strconv"

// Entry is one rendered suggestion.
type Entry struct {
	ID     string
	Text   string
	Active bool
}

// Popup holds the suggestion list state. Entry ids are
// "<prefix>-result-item-<n>", or "result-item-<n>" without a prefix.
type Popup struct {
	prefix           string
	entries          []Entry
	active           int
	open             bool
	activeDescendant string
}

func NewPopup(idPrefix string) *Popup {
	return &Popup{prefix: idPrefix, active: -1}
}

// Open replaces the suggestion list. Empty suggestions leave the popup
// closed. Reports whether the popup is open afterwards.
func (p *Popup) Open(suggestions []string, autoSelect bool) bool {
	p.Close()
	if len(suggestions) == 0 {
		return false
	}
	p.entries = make([]Entry, len(suggestions))
	for i, s := range suggestions {
		p.entries[i] = Entry{ID: p.entryID(i), Text: s}
	}
	p.open = true
	if autoSelect {
		p.mark(0)
	}
	return true
}

func (p *Popup) Close() {
	p.entries = nil
	p.open = false
	p.active = -1
	p.activeDescendant = ""
}

// SetActive moves the active marker to index. Index -1 clears it; any
// other index outside the list is ignored.
func (p *Popup) SetActive(index int) bool {
	if index < -1 || index >= len(p.entries) {
		return false
	}
	if p.active >= 0 {
		p.entries[p.active].Active = false
	}
	p.active = -1
	p.activeDescendant = ""
	if index >= 0 {
		p.mark(index)
	}
	return true
}

func (p *Popup) mark(index int) {
	p.entries[index].Active = true
	p.active = index
	p.activeDescendant = p.entries[index].ID
}

func (p *Popup) Active() (Entry, bool) {
	if p.active < 0 || p.active >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.active], true
}

// EntryByID finds an entry of the current open cycle.
func (p *Popup) EntryByID(id string) (int, Entry, bool) {
	for i, e := range p.entries {
		if e.ID == id {
			return i, e, true
		}
	}
	return -1, Entry{}, false
}

func (p *Popup) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

func (p *Popup) Len() int { return len(p.entries) }

func (p *Popup) ActiveIndex() int { return p.active }

func (p *Popup) IsOpen() bool { return p.open }

func (p *Popup) ActiveDescendant() string { return p.activeDescendant }

func (p *Popup) entryID(i int) string {
	id := "result-item-" + strconv.Itoa(i)
	if p.prefix == "" {
		return id
	}
	return p.prefix + "-" + id
}
