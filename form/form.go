// Package form is an in-memory form that field array controllers can be bound
// to. It stores values in a map[string]any tree addressed by dot/bracket paths,
// keeps a separate tree of initial values, validates registered fields and
// runs reactive work when its owner settles it with Flush.
package form

import (
	"slices"

	"go.uber.org/zap"

	"github.com/brunoga/fieldarray"
	"github.com/brunoga/fieldarray/internal/core"
)

// Form is not safe for concurrent use.
type Form struct {
	values  map[string]any
	initial map[string]any
	fields  map[string]*field

	arrays       *fieldarray.Registry
	sched        *Scheduler
	pendingModes map[fieldarray.ValidateMode]bool

	listeners map[int]func([]fieldarray.Change)
	nextID    int
	history   [][]fieldarray.Change

	cloner core.Cloner
	logger *zap.Logger
}

var _ fieldarray.Form = (*Form)(nil)

// New creates a form. Values start as a deep copy of the initial values.
func New(opts ...Option) *Form {
	cfg := newConfig(opts)

	f := &Form{
		fields:       make(map[string]*field),
		arrays:       fieldarray.NewRegistry(),
		pendingModes: make(map[fieldarray.ValidateMode]bool),
		listeners:    make(map[int]func([]fieldarray.Change)),
		logger:       cfg.logger.Named("form"),
	}

	cloner, err := core.NewCloner(cfg.strategy)
	if err != nil {
		f.logger.Warn("falling back to default clone strategy", zap.Error(err))
		cloner = core.MustCloner(core.CloneGoClone)
	}
	f.cloner = cloner
	f.sched = NewScheduler(f.logger, cfg.maxPasses)

	f.initial = f.cloneTree(cfg.initial)
	f.values = f.cloneTree(f.initial)

	return f
}

// GetValue returns the value at path.
func (f *Form) GetValue(path string) (any, bool) {
	return core.Get(f.values, path)
}

// SetValue writes value at path, creating intermediate containers.
func (f *Form) SetValue(path string, value any) {
	if err := core.Set(f.values, path, value); err != nil {
		f.logger.Warn("could not set value", zap.String("path", path), zap.Error(err))
		return
	}
	f.sched.MarkDirty()
}

// Values returns a deep copy of the value tree.
func (f *Form) Values() map[string]any {
	return f.cloneTree(f.values)
}

// FieldArrays returns the registry of active field array controllers.
func (f *Form) FieldArrays() *fieldarray.Registry {
	return f.arrays
}

// StageInitialValue records a copy of value as the value path resets to.
func (f *Form) StageInitialValue(path string, value any) {
	if err := core.Set(f.initial, path, f.clone(value)); err != nil {
		f.logger.Warn("could not stage initial value", zap.String("path", path), zap.Error(err))
	}
}

// UnsetInitialValue removes the initial value recorded for path.
func (f *Form) UnsetInitialValue(path string) {
	if err := core.Delete(f.initial, path); err != nil {
		f.logger.Warn("could not unset initial value", zap.String("path", path), zap.Error(err))
	}
}

// InitialValue returns the value path resets to.
func (f *Form) InitialValue(path string) (any, bool) {
	return core.Get(f.initial, path)
}

// NotifyValuesChanged records the batch and hands it to every OnChange
// listener.
func (f *Form) NotifyValuesChanged(changes []fieldarray.Change) {
	batch := slices.Clone(changes)
	f.history = append(f.history, batch)

	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		f.listeners[id](batch)
	}
}

// OnChange registers fn to receive every change batch.
func (f *Form) OnChange(fn func([]fieldarray.Change)) (cancel func()) {
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		delete(f.listeners, id)
	}
}

// Changes returns every change batch received so far.
func (f *Form) Changes() [][]fieldarray.Change {
	return slices.Clone(f.history)
}

// OnSettle registers fn to run on every Flush that follows a value change.
func (f *Form) OnSettle(fn func()) (cancel func()) {
	return f.sched.Subscribe(fn)
}

// Flush settles pending work: settle effects and queued validation.
func (f *Form) Flush() {
	f.sched.Flush()
}

// Reset restores every value to its initial value, clears field state and
// rederives the entries of every registered field array.
func (f *Form) Reset() {
	f.values = f.cloneTree(f.initial)
	for _, fd := range f.fields {
		fd.touched = false
		fd.validated = false
		fd.valid = true
		fd.errors = nil
	}
	f.sched.MarkDirty()
	f.arrays.ResetAll()
}

func (f *Form) clone(v any) any {
	dst, err := f.cloner.Clone(v)
	if err != nil {
		f.logger.Warn("could not copy value, storing it as is", zap.Error(err))
		return v
	}
	return dst
}

func (f *Form) cloneTree(tree map[string]any) map[string]any {
	if tree == nil {
		return map[string]any{}
	}
	if dst, ok := f.clone(tree).(map[string]any); ok && dst != nil {
		return dst
	}
	return map[string]any{}
}
