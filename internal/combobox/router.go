package combobox

import "strings"

// checkKey handles keyup: navigation keys were already handled on keydown,
// anything else refilters.
func (c *Controller) checkKey(e *Event) {
	if e.Key.isNavigation() {
		e.PreventDefault()
		return
	}
	c.updateResults(false)

	if c.inline && e.Key != KeyBackspace {
		c.autocompleteItem()
	}
}

// setActiveItem handles keydown navigation.
func (c *Controller) setActiveItem(e *Event) {
	if e.Key == KeyEscape {
		if !c.popup.IsOpen() {
			return
		}
		e.PreventDefault()
		c.hide()
		c.log.Debug("escape")
		input := c.surface.Input
		c.sched.Defer(func() { input.SetValue("") })
		return
	}

	if c.popup.Len() < 1 {
		if !c.inline || (e.Key != KeyDown && e.Key != KeyUp) {
			return
		}
		c.updateResults(true)
		if c.popup.Len() < 1 {
			return
		}
	}

	n := c.popup.Len()
	index := c.popup.ActiveIndex()
	switch e.Key {
	case KeyUp:
		if index <= 0 {
			index = n - 1
		} else {
			index--
		}
	case KeyDown:
		if index == -1 || index >= n-1 {
			index = 0
		} else {
			index++
		}
	case KeyEnter:
		e.PreventDefault()
		c.commitActive()
		return
	case KeyTab:
		// Commits whatever is active, including an inline guess.
		c.commitActive()
		c.hide()
		return
	default:
		return
	}

	e.PreventDefault()
	c.popup.SetActive(index)
	if entry, ok := c.popup.Active(); ok && c.inline {
		c.surface.Input.SetValue(entry.Text)
	}
}

// autocompleteItem completes the typed text to the active entry and
// highlights the completed tail so further typing replaces it. Entries that
// do not extend the typed text are left alone.
func (c *Controller) autocompleteItem() {
	entry, ok := c.popup.Active()
	input := c.surface.Input
	typed := input.Value()
	if !ok || typed == "" {
		return
	}
	if !strings.HasPrefix(strings.ToLower(entry.Text), strings.ToLower(typed)) {
		return
	}
	if typed != entry.Text {
		input.SetValue(entry.Text)
		input.SetSelectionRange(len(typed), len(entry.Text))
	}
}

func (c *Controller) checkShow(*Event) {
	if c.popup.IsOpen() {
		return
	}
	c.updateResults(false)
}

func (c *Controller) checkSelection(*Event) {
	if c.commitActive() {
		return
	}
	c.hide()
}

func (c *Controller) clickItem(e *Event) {
	if _, entry, ok := c.popup.EntryByID(e.Target); ok {
		c.commit(entry)
	}
}

func (c *Controller) checkHide(e *Event) {
	if e.Target == c.surface.Input.ID() || c.surface.Combobox.Contains(e.Target) {
		return
	}
	c.hide()
}
