package fieldarray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brunoga/fieldarray"
	"github.com/brunoga/fieldarray/form"
)

// spyForm records the calls a controller makes into its form.
type spyForm struct {
	*form.Form
	calls       []string
	validations []fieldarray.ValidateMode
	batches     [][]fieldarray.Change
}

func newSpyForm(values map[string]any) *spyForm {
	return &spyForm{Form: form.New(form.WithInitialValues(values))}
}

func (s *spyForm) SetValue(path string, value any) {
	s.calls = append(s.calls, "set:"+path)
	s.Form.SetValue(path, value)
}

func (s *spyForm) Validate(mode fieldarray.ValidateMode) {
	s.calls = append(s.calls, "validate:"+mode.String())
	s.validations = append(s.validations, mode)
	s.Form.Validate(mode)
}

func (s *spyForm) DestroyPath(path string) {
	s.calls = append(s.calls, "destroy:"+path)
	s.Form.DestroyPath(path)
}

func (s *spyForm) StageInitialValue(path string, value any) {
	s.calls = append(s.calls, "stage:"+path)
	s.Form.StageInitialValue(path, value)
}

func (s *spyForm) UnsetInitialValue(path string) {
	s.calls = append(s.calls, "unset:"+path)
	s.Form.UnsetInitialValue(path)
}

func (s *spyForm) NotifyValuesChanged(changes []fieldarray.Change) {
	s.calls = append(s.calls, "notify")
	s.batches = append(s.batches, changes)
	s.Form.NotifyValuesChanged(changes)
}

func (s *spyForm) reset() {
	s.calls = nil
	s.validations = nil
	s.batches = nil
}

func (s *spyForm) lastBatch(t *testing.T) []fieldarray.Change {
	t.Helper()
	require.NotEmpty(t, s.batches, "no change batch was emitted")
	return s.batches[len(s.batches)-1]
}

func arrayOf(t *testing.T, f fieldarray.Form, path string) []any {
	t.Helper()
	v, ok := f.GetValue(path)
	if !ok || v == nil {
		return nil
	}
	s, ok := v.([]any)
	require.True(t, ok, "value at %s is %T", path, v)
	return s
}

func keysOf(c *fieldarray.Controller) []int {
	keys := make([]int, 0, c.Len())
	for _, e := range c.Entries() {
		keys = append(keys, e.Key())
	}
	return keys
}

func requireInSync(t *testing.T, f fieldarray.Form, c *fieldarray.Controller) {
	t.Helper()
	values := arrayOf(t, f, c.Path())
	require.Equal(t, len(values), c.Len(), "entries and array length diverged")
	for i, e := range c.Entries() {
		require.Equal(t, i == 0, e.IsFirst(), "isFirst at %d", i)
		require.Equal(t, i == len(values)-1, e.IsLast(), "isLast at %d", i)
	}
}
