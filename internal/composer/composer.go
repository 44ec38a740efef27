// Package composer holds the editing session's current selection and
// the style preferences that apply to the next inserted character.
//
// Preferences exist so a caret sitting at a style boundary can type into
// or out of a style: toggling bold with a collapsed selection records a
// preference instead of touching any span. Any non-collapsed selection
// clears the preferences.
package composer

import (
	"sync"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

// SelectionListener is notified after every selection change raised
// through the composer, synchronously, on the mutating goroutine.
type SelectionListener func(sel *document.Selection)

// ListenerID identifies a registered selection listener.
type ListenerID int

// Composer owns the current document selection and pending style
// preferences. A nil selection means nothing is selected and no caret is
// placed.
type Composer struct {
	mu          sync.RWMutex
	selection   *document.Selection
	preferences map[string]attrtext.Attribution
	listeners   map[ListenerID]SelectionListener
	nextLID     ListenerID
}

// New creates a composer with no selection and no preferences.
func New() *Composer {
	return &Composer{
		preferences: make(map[string]attrtext.Attribution),
		listeners:   make(map[ListenerID]SelectionListener),
	}
}

// Selection returns the current selection, or nil when nothing is
// selected.
func (c *Composer) Selection() *document.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selection == nil {
		return nil
	}
	sel := *c.selection
	return &sel
}

// SetSelection replaces the current selection. A non-collapsed selection
// clears the pending style preferences.
func (c *Composer) SetSelection(sel *document.Selection) {
	c.mu.Lock()
	if sel == nil {
		c.selection = nil
	} else {
		s := *sel
		c.selection = &s
		if !s.IsCollapsed() {
			c.preferences = make(map[string]attrtext.Attribution)
		}
	}
	ls := make([]SelectionListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(sel)
	}
}

// ClearSelection removes the selection and the pending preferences.
func (c *Composer) ClearSelection() {
	c.mu.Lock()
	c.selection = nil
	c.preferences = make(map[string]attrtext.Attribution)
	c.mu.Unlock()
}

// Subscribe registers a selection listener.
func (c *Composer) Subscribe(l SelectionListener) ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextLID++
	c.listeners[c.nextLID] = l
	return c.nextLID
}

// Unsubscribe removes a selection listener. Unknown ids are ignored.
func (c *Composer) Unsubscribe(id ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, id)
}

// ActivateStyles adds attributions to the pending preference set.
func (c *Composer) ActivateStyles(attrs ...attrtext.Attribution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range attrs {
		c.preferences[a.ID()] = a
	}
}

// DeactivateStyles removes attributions from the pending preference set.
func (c *Composer) DeactivateStyles(attrs ...attrtext.Attribution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range attrs {
		delete(c.preferences, a.ID())
	}
}

// TogglePreference flips one attribution's presence in the pending set.
// Returns true if the attribution is now active.
func (c *Composer) TogglePreference(a attrtext.Attribution) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.preferences[a.ID()]; ok {
		delete(c.preferences, a.ID())
		return false
	}
	c.preferences[a.ID()] = a
	return true
}

// HasPreference reports whether an attribution is in the pending set.
func (c *Composer) HasPreference(a attrtext.Attribution) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.preferences[a.ID()]
	return ok
}

// PreferencesSnapshot returns the pending attributions in unspecified
// order.
func (c *Composer) PreferencesSnapshot() []attrtext.Attribution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]attrtext.Attribution, 0, len(c.preferences))
	for _, a := range c.preferences {
		out = append(out, a)
	}
	return out
}

// ClearPreferences empties the pending preference set.
func (c *Composer) ClearPreferences() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preferences = make(map[string]attrtext.Attribution)
}
