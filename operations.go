package fieldarray

import (
	"slices"

	"go.uber.org/zap"

	"github.com/brunoga/fieldarray/internal/core"
)

// Remove deletes the element at idx. Every position from idx to the old end is
// reported, since all of them shift.
func (c *Controller) Remove(idx int) {
	path, values, ok := c.prepare("remove", false)
	if !ok {
		return
	}
	if idx < 0 || idx >= len(values) {
		c.warn("remove index out of range", zap.Int("index", idx), zap.Int("len", len(values)))
		return
	}

	before := slices.Clone(values)
	after := slices.Delete(slices.Clone(values), idx, idx+1)

	fieldPath := core.IndexPath(path, idx)
	c.form.DestroyPath(fieldPath)
	c.form.UnsetInitialValue(fieldPath)
	c.writeArray(path, after)
	c.entries = slices.Delete(slices.Clone(c.entries), idx, idx+1)

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, idx, len(before)-1))
}

// Push appends a deep copy of v. A missing array is created.
func (c *Controller) Push(v any) {
	path, values, ok := c.prepare("push", true)
	if !ok {
		return
	}

	value := c.clone(v)
	before := slices.Clone(values)
	after := append(slices.Clone(values), value)
	last := len(after) - 1

	c.form.StageInitialValue(core.IndexPath(path, last), value)
	c.writeArray(path, after)
	c.entries = append(slices.Clone(c.entries), c.createEntry(value, -1, nil))

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, last, last))
}

// Swap exchanges the elements at a and b. Swapping an index with itself does
// nothing.
func (c *Controller) Swap(a, b int) {
	path, values, ok := c.prepare("swap", false)
	if !ok {
		return
	}
	if a < 0 || a >= len(values) || b < 0 || b >= len(values) {
		c.warn("swap index out of range", zap.Int("a", a), zap.Int("b", b), zap.Int("len", len(values)))
		return
	}
	if a == b {
		return
	}

	before := slices.Clone(values)
	after := slices.Clone(values)
	after[a], after[b] = after[b], after[a]

	entries := slices.Clone(c.entries)
	entries[a], entries[b] = entries[b], entries[a]

	c.writeArray(path, after)
	c.entries = entries

	c.afterMutation()
	c.notify([]Change{
		indexChange(path, a, before, after),
		indexChange(path, b, before, after),
	})
}

// Insert places a deep copy of v at idx, which may equal the array length.
// Every position from idx to the new end is reported.
func (c *Controller) Insert(idx int, v any) {
	path, values, ok := c.prepare("insert", false)
	if !ok {
		return
	}
	if idx < 0 || idx > len(values) {
		c.warn("insert index out of range", zap.Int("index", idx), zap.Int("len", len(values)))
		return
	}

	value := c.clone(v)
	before := slices.Clone(values)
	after := slices.Insert(slices.Clone(values), idx, value)

	c.form.StageInitialValue(core.IndexPath(path, idx), value)
	c.writeArray(path, after)
	c.entries = slices.Insert(slices.Clone(c.entries), idx, c.createEntry(value, -1, nil))

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, idx, len(after)-1))
}

// Replace overwrites the whole array with values and records it as the
// array's initial value. Entries already occupying a position are kept.
func (c *Controller) Replace(values []any) {
	if c.noop {
		return
	}
	path := c.Path()
	if path == "" {
		c.warn("field array path resolved to an empty string", zap.String("op", "replace"))
		return
	}

	current, _, _ := c.arrayAt(path)
	before := slices.Clone(current)
	after := slices.Clone(values)
	if after == nil {
		after = []any{}
	}

	c.form.StageInitialValue(path, after)
	c.writeArray(path, after)
	c.rebuildEntries(after, true)

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, 0, len(after)-1))
}

// Update overwrites the element at idx. The change is reported only when v
// differs from the current element.
func (c *Controller) Update(idx int, v any) {
	path, values, ok := c.prepare("update", false)
	if !ok {
		return
	}
	if idx < 0 || idx > len(values)-1 {
		c.warn("update index out of range", zap.Int("index", idx), zap.Int("len", len(values)))
		return
	}

	old := values[idx]
	fieldPath := core.IndexPath(path, idx)
	c.form.SetValue(fieldPath, v)
	c.track(path)
	c.form.Validate(ValidateValidatedOnly)

	if core.Equal(old, v) {
		return
	}
	c.notify([]Change{{Path: fieldPath, OldValue: old, NewValue: v}})
}

// Prepend inserts a deep copy of v at position 0. A missing array is created.
// Every position of the new array is reported, as with Insert.
func (c *Controller) Prepend(v any) {
	path, values, ok := c.prepare("prepend", true)
	if !ok {
		return
	}

	value := c.clone(v)
	before := slices.Clone(values)
	after := slices.Insert(slices.Clone(values), 0, value)

	c.form.StageInitialValue(core.IndexPath(path, 0), value)
	c.writeArray(path, after)
	c.entries = slices.Insert(slices.Clone(c.entries), 0, c.createEntry(value, -1, nil))

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, 0, len(after)-1))
}

// Move takes the element at from and reinserts it at to. Every position
// between the two, inclusive, is reported. Moving an element onto itself does
// nothing.
func (c *Controller) Move(from, to int) {
	path, values, ok := c.prepare("move", false)
	if !ok {
		return
	}
	if from < 0 || from >= len(values) || to < 0 || to >= len(values) {
		c.warn("move index out of range", zap.Int("from", from), zap.Int("to", to), zap.Int("len", len(values)))
		return
	}
	if from == to {
		return
	}

	before := slices.Clone(values)
	after := moveItem(slices.Clone(values), from, to)
	entries := moveItem(slices.Clone(c.entries), from, to)

	c.writeArray(path, after)
	c.entries = entries

	c.afterMutation()
	c.notify(rangeChanges(path, before, after, min(from, to), max(from, to)))
}

func moveItem[T any](s []T, from, to int) []T {
	item := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, item)
}
