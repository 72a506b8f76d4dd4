package fieldarray

import (
	"go.uber.org/zap"
)

// Entry is a stable handle over one element of a controller's array. Its key
// never changes and is never reused by the same controller, so it can be used
// to track an element across reorders.
type Entry struct {
	key     int
	owner   *Controller
	initial any
	isFirst bool
	isLast  bool
}

// Key returns the entry's identity.
func (e *Entry) Key() int {
	return e.key
}

// IsFirst reports whether the entry currently sits at position 0.
func (e *Entry) IsFirst() bool {
	return e.isFirst
}

// IsLast reports whether the entry currently sits at the last position.
func (e *Entry) IsLast() bool {
	return e.isLast
}

// Value reads the array element at the entry's current position. A removed
// entry returns the value it was created with.
func (e *Entry) Value() any {
	idx := e.owner.indexOf(e.key)
	if idx == -1 {
		return e.initial
	}
	values, _ := e.owner.currentValues(e.owner.Path())
	return valueAt(values, idx)
}

// SetValue writes v to the entry's current position through Controller.Update.
// Writes through a removed entry are discarded.
func (e *Entry) SetValue(v any) {
	idx := e.owner.indexOf(e.key)
	if idx == -1 {
		e.owner.warn("attempting to update a non-existent array item", zap.Int("key", e.key))
		return
	}
	e.owner.Update(idx, v)
}

// createEntry returns the entry already at idx in current when there is one,
// otherwise a new entry with a fresh key. Pass idx -1 to always allocate. The
// entry keeps its own copy of value, so later edits to the array element do not
// reach the value a removed entry falls back to.
func (c *Controller) createEntry(value any, idx int, current []*Entry) *Entry {
	if idx >= 0 && idx < len(current) && current[idx] != nil {
		return current[idx]
	}

	key := c.nextKey
	c.nextKey++

	return &Entry{
		key:     key,
		owner:   c,
		initial: c.clone(value),
	}
}

func (c *Controller) updateEntryFlags() {
	n := len(c.entries)
	for i, e := range c.entries {
		e.isFirst = i == 0
		e.isLast = i == n-1
	}
}

func (c *Controller) indexOf(key int) int {
	for i, e := range c.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}

// rebuildEntries derives the entry list from values. With reuse, entries that
// already occupy a position are kept; otherwise every entry gets a new key.
func (c *Controller) rebuildEntries(values []any, reuse bool) {
	var current []*Entry
	if reuse {
		current = c.entries
	}

	next := make([]*Entry, len(values))
	for i, v := range values {
		next[i] = c.createEntry(v, i, current)
	}
	c.entries = next
	c.updateEntryFlags()
}

func valueAt(values []any, idx int) any {
	if idx < 0 || idx >= len(values) {
		return nil
	}
	return values[idx]
}
