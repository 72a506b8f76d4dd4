package fieldarray

import (
	"github.com/brunoga/fieldarray/internal/core"
)

// rangeChanges builds one Change per index in the inclusive range [from, to],
// reading old values from before and new values from after.
func rangeChanges(path string, before, after []any, from, to int) []Change {
	if from > to {
		return nil
	}
	changes := make([]Change, 0, to-from+1)
	for i := from; i <= to; i++ {
		changes = append(changes, indexChange(path, i, before, after))
	}
	return changes
}

func indexChange(path string, idx int, before, after []any) Change {
	return Change{
		Path:     core.IndexPath(path, idx),
		OldValue: valueAt(before, idx),
		NewValue: valueAt(after, idx),
	}
}

// notify hands the changes of one mutation to the form in a single call.
func (c *Controller) notify(changes []Change) {
	if len(changes) == 0 {
		return
	}
	c.form.NotifyValuesChanged(changes)
}
