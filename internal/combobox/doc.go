// Package combobox contains the listbox combobox state machine.
//
// Allowed here:
// - prefix filtering, popup state, key/focus/click routing, commit rules
// - the event surface a host attaches the controller to, and the View it renders
//
// Not allowed here:
// - terminal or DOM rendering (see internal/tui)
// - candidate storage and loading (see internal/source)
package combobox
