package fieldarray

import (
	"slices"

	"go.uber.org/zap"

	"github.com/brunoga/fieldarray/internal/core"
)

// track records the array currently stored at path as the one the entries are
// synchronized with.
func (c *Controller) track(path string) {
	values, ok := c.currentValues(path)
	if !ok {
		values = nil
	}
	c.stored = values
	c.synced = slices.Clone(values)
}

// checkExternalWrite runs each time the form settles. Element edits keep the
// stored slice, so only a different slice with different contents means the
// array was rewritten without going through the controller. The entries are
// then rebuilt with fresh identities. A rewrite that reuses the stored slice
// with the same length looks like element edits and keeps identities.
func (c *Controller) checkExternalWrite() {
	path := c.Path()
	if path == "" {
		return
	}

	// A value that is not an array holds no elements.
	values, ok := c.currentValues(path)
	if !ok {
		values = nil
	}

	if sameSlice(values, c.stored) && len(values) == len(c.entries) {
		return
	}

	if core.Equal(values, c.synced) && len(values) == len(c.entries) {
		c.stored = values
		return
	}

	c.logger.Debug("array written outside the controller, rebuilding entries",
		zap.String("path", path),
		zap.Int("entries", len(c.entries)),
		zap.Int("values", len(values)))
	c.rebuildEntries(values, false)
	c.track(path)
}

func sameSlice(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
