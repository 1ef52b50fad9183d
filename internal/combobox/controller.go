package combobox

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Autocomplete modes an input can declare.
const (
	AutocompleteList = "list"
	AutocompleteBoth = "both"
)

// Options configure a Controller. All fields are optional.
type Options struct {
	// Label is shown next to the input and exposed in the View.
	Label string
	// AutoSelectFirst marks the first suggestion active whenever a
	// non-empty list is produced.
	AutoSelectFirst bool
	Source          Source
	// Scheduler receives the deferred input clear after Escape. When nil
	// the controller queues the work itself and runs it before the next
	// event it handles.
	Scheduler Scheduler
	// IDPrefix prefixes entry ids. Defaults to a random UUID.
	IDPrefix string
	Logger   *slog.Logger

	OnChange func(selected string)
	OnOpen   func()
	OnClose  func()
}

// Controller is the combobox state machine. It is not safe for concurrent
// use; hosts deliver events from a single goroutine.
type Controller struct {
	opts     Options
	id       string
	popup    *Popup
	sched    Scheduler
	queue    *Queue
	log      *slog.Logger
	selected string

	surface  Surface
	inline   bool
	attached bool
	cancels  []func()
}

func New(opts Options) *Controller {
	id := opts.IDPrefix
	if id == "" {
		id = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		opts:  opts,
		id:    id,
		popup: NewPopup(id),
		log:   logger.With("combobox", id),
	}
	if opts.Scheduler != nil {
		c.sched = opts.Scheduler
	} else {
		c.queue = &Queue{}
		c.sched = c.queue
	}
	return c
}

// Attach wires the controller's listeners into s. Every member of s is
// required.
func (c *Controller) Attach(s Surface) error {
	if c.attached {
		return ErrAlreadyAttached
	}
	switch {
	case s.Input == nil:
		return fmt.Errorf("%w: input", ErrMissingAttachment)
	case s.Listbox == nil:
		return fmt.Errorf("%w: listbox", ErrMissingAttachment)
	case s.Combobox == nil:
		return fmt.Errorf("%w: combobox", ErrMissingAttachment)
	case s.Document == nil:
		return fmt.Errorf("%w: document", ErrMissingAttachment)
	}
	c.surface = s
	c.inline = s.Input.AutocompleteMode() == AutocompleteBoth
	c.cancels = []func(){
		s.Document.Listen(EventClick, c.wrap(c.checkHide)),
		s.Input.Listen(EventKeyUp, c.wrap(c.checkKey)),
		s.Input.Listen(EventKeyDown, c.wrap(c.setActiveItem)),
		s.Input.Listen(EventFocus, c.wrap(c.checkShow)),
		s.Input.Listen(EventBlur, c.wrap(c.checkSelection)),
		s.Listbox.Listen(EventClick, c.wrap(c.clickItem)),
	}
	c.attached = true
	c.log.Debug("attached", "input", s.Input.ID(), "inline", c.inline)
	return nil
}

// Detach removes every listener added by Attach. Safe to call when not
// attached.
func (c *Controller) Detach() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	if c.attached {
		c.log.Debug("detached")
	}
	c.attached = false
}

// wrap drains work the controller deferred to itself before handling the
// next event.
func (c *Controller) wrap(h Handler) Handler {
	return func(e *Event) {
		if c.queue != nil {
			c.queue.Flush()
		}
		h(e)
	}
}

func (c *Controller) Selection() string { return c.selected }

func (c *Controller) IsOpen() bool { return c.popup.IsOpen() }

func (c *Controller) ActiveIndex() int { return c.popup.ActiveIndex() }

// Suggestions returns the texts of the current suggestion list.
func (c *Controller) Suggestions() []string {
	entries := c.popup.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

// updateResults regenerates the suggestion list for the current query.
func (c *Controller) updateResults(showAll bool) {
	wasOpen := c.popup.IsOpen()
	query := c.surface.Input.Value()
	results := Suggest(c.opts.Source, query, showAll)
	open := c.popup.Open(results, c.opts.AutoSelectFirst)
	switch {
	case open && !wasOpen:
		c.log.Debug("opened", "query", query, "results", len(results))
		if c.opts.OnOpen != nil {
			c.opts.OnOpen()
		}
	case !open && wasOpen:
		c.notifyClosed()
	}
}

func (c *Controller) hide() {
	wasOpen := c.popup.IsOpen()
	c.popup.Close()
	if wasOpen {
		c.notifyClosed()
	}
}

func (c *Controller) notifyClosed() {
	c.log.Debug("closed")
	if c.opts.OnClose != nil {
		c.opts.OnClose()
	}
}

// commit makes entry the selection. The input is cleared and the popup
// closed. The selection is the entry text, never the input's copy of it:
// hosts may truncate or sanitize what the field holds.
func (c *Controller) commit(entry Entry) {
	c.selected = entry.Text
	c.surface.Input.SetValue("")
	c.log.Debug("commit", "selected", c.selected)
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.selected)
	}
	c.hide()
}

func (c *Controller) commitActive() bool {
	entry, ok := c.popup.Active()
	if !ok {
		return false
	}
	c.commit(entry)
	return true
}
