// Package fieldarray manages a reorderable, resizable array inside a form's
// value tree. A Controller keeps three things in step: the array stored in the
// form, an ordered list of stably identified entries, and the form's
// validation and change notification machinery.
package fieldarray

import (
	"slices"

	"go.uber.org/zap"

	"github.com/brunoga/fieldarray/internal/core"
)

// Controller owns the entries of one array path. Every operation runs to
// completion before returning: the array and the entries are written together,
// flags are refreshed, validation is scheduled and changes are reported in one
// batch. A Controller is not safe for concurrent use.
type Controller struct {
	form    Form
	path    ArrayPath
	entries []*Entry
	nextKey int

	// stored is the slice last seen at the path, synced a shallow copy of its
	// contents at that time.
	stored []any
	synced []any

	cloner      core.Cloner
	logger      *zap.Logger
	devMode     bool
	noop        bool
	cancelWatch func()
}

// Use returns the controller for path on form. A controller already registered
// for the same resolved path is returned as is. When form is nil or path
// resolves to an empty string a controller whose operations do nothing is
// returned.
func Use(form Form, path ArrayPath, opts ...Option) *Controller {
	cfg := newConfig(opts)

	c := &Controller{
		form:    form,
		path:    path,
		logger:  cfg.logger.Named("fieldarray"),
		devMode: cfg.devMode,
	}

	if form == nil || form.FieldArrays() == nil {
		c.warn("field array used without a form")
		c.noop = true
		return c
	}
	if path == nil || path.Resolve() == "" {
		c.warn("field array used without a path")
		c.noop = true
		return c
	}

	if existing := form.FieldArrays().Lookup(path.Resolve()); existing != nil {
		return existing
	}

	cloner, err := core.NewCloner(cfg.strategy)
	if err != nil {
		c.warn("falling back to default clone strategy", zap.Error(err))
		cloner = core.MustCloner(CloneGoClone)
	}
	c.cloner = cloner

	c.Reset()
	form.FieldArrays().add(c)
	c.cancelWatch = form.OnSettle(c.checkExternalWrite)

	c.logger.Debug("field array registered",
		zap.String("path", c.Path()),
		zap.Int("entries", len(c.entries)))

	return c
}

// Path returns the currently resolved array path.
func (c *Controller) Path() string {
	if c.path == nil {
		return ""
	}
	return c.path.Resolve()
}

// Entries returns the current entries in array order.
func (c *Controller) Entries() []*Entry {
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Controller) Len() int {
	return len(c.entries)
}

// Values returns the current value of every entry in array order.
func (c *Controller) Values() []any {
	values, _ := c.currentValues(c.Path())
	out := make([]any, len(c.entries))
	for i := range c.entries {
		out[i] = valueAt(values, i)
	}
	return out
}

// Reset rederives the entries from the array currently stored in the form,
// keeping the entry that already occupies each position. A value that is not
// an array leaves no entries.
func (c *Controller) Reset() {
	if c.noop {
		return
	}
	path := c.Path()
	values, ok := c.currentValues(path)
	if !ok {
		values = nil
	}
	c.rebuildEntries(values, true)
	c.track(path)
}

// Dispose removes the controller from its form's registry and stops watching
// for external writes. Operations keep working on the array afterwards but the
// form no longer resets it.
func (c *Controller) Dispose() {
	if c.noop {
		return
	}
	c.form.FieldArrays().remove(c)
	if c.cancelWatch != nil {
		c.cancelWatch()
		c.cancelWatch = nil
	}
}

// currentValues returns the array stored at path, or an empty array when
// nothing is stored there. ok is false when the stored value is not an array.
func (c *Controller) currentValues(path string) ([]any, bool) {
	values, present, ok := c.arrayAt(path)
	if !present {
		return []any{}, true
	}
	return values, ok
}

// arrayAt reads the value at path. present is false when the path is missing
// or holds nil, ok is false when it holds something other than an array.
func (c *Controller) arrayAt(path string) (values []any, present, ok bool) {
	if c.form == nil || path == "" {
		return nil, false, false
	}
	raw, found := c.form.GetValue(path)
	if !found || raw == nil {
		return nil, false, false
	}
	values, ok = core.AsSlice(raw)
	return values, true, ok
}

// writeArray stores values at path and records them as synchronized.
func (c *Controller) writeArray(path string, values []any) {
	c.form.SetValue(path, values)
	c.track(path)
}

// prepare resolves the path and reads the array for a mutation. When the
// entries do not match the array length, the array was rewritten since the
// last settle and the entries are rebuilt first.
func (c *Controller) prepare(op string, allowAbsent bool) (path string, values []any, ok bool) {
	if c.noop {
		return "", nil, false
	}
	path = c.Path()
	if path == "" {
		c.warn("field array path resolved to an empty string", zap.String("op", op))
		return "", nil, false
	}

	values, present, isArray := c.arrayAt(path)
	switch {
	case !present && allowAbsent:
		values = nil
	case !present:
		c.warn("field array path holds no value", zap.String("op", op), zap.String("path", path))
		c.dropEntries(path)
		return "", nil, false
	case !isArray:
		c.warn("field array path does not hold an array", zap.String("op", op), zap.String("path", path))
		c.dropEntries(path)
		return "", nil, false
	}

	if len(values) != len(c.entries) {
		c.rebuildEntries(values, false)
	}

	return path, values, true
}

// dropEntries empties the entries when the path no longer holds elements.
func (c *Controller) dropEntries(path string) {
	if len(c.entries) == 0 {
		return
	}
	c.rebuildEntries(nil, false)
	c.track(path)
}

func (c *Controller) clone(v any) any {
	dst, err := c.cloner.Clone(v)
	if err != nil {
		c.logger.Warn("could not copy value, storing it as is", zap.Error(err))
		return v
	}
	return dst
}

// afterMutation runs after every structural change.
func (c *Controller) afterMutation() {
	c.updateEntryFlags()
	c.form.Validate(ValidateSilent)
}

func (c *Controller) warn(msg string, fields ...zap.Field) {
	if !c.devMode {
		return
	}
	c.logger.Warn(msg, fields...)
}
