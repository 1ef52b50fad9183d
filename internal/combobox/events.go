package combobox

import "errors"

// Key identifies the keys the router cares about. Everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyPageUp
	KeyPageDown
	KeyEnd
	KeyHome
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyDelete
)

var keyNames = map[Key]string{
	KeyOther:     "other",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeySpace:     "space",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEnd:       "end",
	KeyHome:      "home",
	KeyLeft:      "left",
	KeyUp:        "up",
	KeyRight:     "right",
	KeyDown:      "down",
	KeyDelete:    "delete",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey maps a key name ("up", "esc", "enter", ...) to a Key.
// Unknown names, including printable characters, are KeyOther.
func ParseKey(name string) Key {
	switch name {
	case "escape":
		return KeyEscape
	case "return":
		return KeyEnter
	case " ":
		return KeySpace
	}
	for k, n := range keyNames {
		if k != KeyOther && n == name {
			return k
		}
	}
	return KeyOther
}

func (k Key) isNavigation() bool {
	switch k {
	case KeyUp, KeyDown, KeyEscape, KeyEnter:
		return true
	}
	return false
}

type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventFocus
	EventBlur
	EventClick
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// Event is a single UI event delivered to a listener. Target is the id of
// the node the event originated on (an entry id for listbox clicks).
type Event struct {
	Type   EventType
	Key    Key
	Target string

	prevented bool
}

func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) DefaultPrevented() bool { return e.prevented }

type Handler func(*Event)

// EventTarget accepts listeners. The returned cancel func removes exactly
// the listener it was returned for and is safe to call more than once.
type EventTarget interface {
	Listen(t EventType, h Handler) (cancel func())
}

// InputElement is the text field the combobox drives.
type InputElement interface {
	EventTarget
	ID() string
	Value() string
	SetValue(v string)
	SetSelectionRange(start, end int)
	// AutocompleteMode reports the declared aria-autocomplete mode ("list" or "both").
	AutocompleteMode() string
}

// Container answers whether a node id lies inside a region.
type Container interface {
	Contains(id string) bool
}

// Surface bundles the attachment points a Controller needs.
type Surface struct {
	Input    InputElement
	Listbox  EventTarget
	Combobox Container
	Document EventTarget
}

var (
	ErrMissingAttachment = errors.New("combobox: missing attachment point")
	ErrAlreadyAttached   = errors.New("combobox: already attached")
)
