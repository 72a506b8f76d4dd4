package form

import (
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/brunoga/fieldarray"
	"github.com/brunoga/fieldarray/internal/core"
)

// Validator returns the error messages for value, or none when it is valid.
type Validator func(value any) []string

// FieldState is a snapshot of one registered field.
type FieldState struct {
	Path      string
	Touched   bool
	Dirty     bool
	Validated bool
	Valid     bool
	Errors    []string
}

type field struct {
	validator Validator
	touched   bool
	validated bool
	valid     bool
	errors    []string
}

// RegisterField registers a field at path. validator may be nil.
func (f *Form) RegisterField(path string, validator Validator) {
	path = core.NormalizePath(path)
	if existing, ok := f.fields[path]; ok {
		existing.validator = validator
		return
	}
	f.fields[path] = &field{validator: validator, valid: true}
}

// Field returns the state of the field registered at path.
func (f *Form) Field(path string) (FieldState, bool) {
	path = core.NormalizePath(path)
	fd, ok := f.fields[path]
	if !ok {
		return FieldState{}, false
	}
	value, _ := f.GetValue(path)
	initial, _ := f.InitialValue(path)
	return FieldState{
		Path:      path,
		Touched:   fd.touched,
		Dirty:     !core.Equal(value, initial),
		Validated: fd.validated,
		Valid:     fd.valid,
		Errors:    slices.Clone(fd.errors),
	}, true
}

// FieldPaths returns the registered field paths in sorted order.
func (f *Form) FieldPaths() []string {
	paths := make([]string, 0, len(f.fields))
	for path := range f.fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Touch marks the field at path as touched.
func (f *Form) Touch(path string) {
	if fd, ok := f.fields[core.NormalizePath(path)]; ok {
		fd.touched = true
	}
}

// Valid reports whether every registered field passed its last validation.
func (f *Form) Valid() bool {
	for _, fd := range f.fields {
		if !fd.valid {
			return false
		}
	}
	return true
}

// Validate schedules a validation pass in the given mode. The pass runs on the
// next Flush.
func (f *Form) Validate(mode fieldarray.ValidateMode) {
	f.pendingModes[mode] = true
	f.sched.Queue("validate", f.runValidation)
}

// DestroyPath drops every field registered at or under path.
func (f *Form) DestroyPath(path string) {
	for fieldPath := range f.fields {
		if core.HasPathPrefix(fieldPath, path) {
			delete(f.fields, fieldPath)
		}
	}
}

func (f *Form) runValidation() {
	modes := f.pendingModes
	f.pendingModes = make(map[fieldarray.ValidateMode]bool)

	for _, mode := range []fieldarray.ValidateMode{
		fieldarray.ValidateSilent,
		fieldarray.ValidateValidatedOnly,
		fieldarray.ValidateForce,
	} {
		if modes[mode] {
			f.validateFields(mode)
		}
	}
}

func (f *Form) validateFields(mode fieldarray.ValidateMode) {
	for _, path := range f.FieldPaths() {
		fd := f.fields[path]
		if fd.validator == nil {
			continue
		}
		if mode == fieldarray.ValidateValidatedOnly && !fd.validated {
			continue
		}

		value, _ := f.GetValue(path)
		errs := fd.validator(value)
		fd.valid = len(errs) == 0

		switch mode {
		case fieldarray.ValidateSilent:
			if fd.valid {
				fd.errors = nil
			}
		default:
			fd.validated = true
			fd.errors = errs
		}
	}

	f.logger.Debug("validated fields", zap.Stringer("mode", mode), zap.Int("fields", len(f.fields)))
}
