package fieldarray

import (
	"github.com/brunoga/fieldarray/internal/core"
)

// Registry tracks the active controllers of a form. Controllers add themselves
// on creation and remove themselves on Dispose.
type Registry struct {
	controllers []*Controller
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Lookup returns the controller whose path currently resolves to path, or nil.
func (r *Registry) Lookup(path string) *Controller {
	if r == nil {
		return nil
	}
	path = core.NormalizePath(path)
	for _, c := range r.controllers {
		if core.NormalizePath(c.Path()) == path {
			return c
		}
	}
	return nil
}

// Controllers returns the registered controllers in registration order.
func (r *Registry) Controllers() []*Controller {
	if r == nil {
		return nil
	}
	out := make([]*Controller, len(r.controllers))
	copy(out, r.controllers)
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.controllers)
}

// ResetAll rederives the entries of every registered controller from the
// current form values. Forms call it at the end of their reset flow.
func (r *Registry) ResetAll() {
	for _, c := range r.Controllers() {
		c.Reset()
	}
}

func (r *Registry) add(c *Controller) {
	r.controllers = append(r.controllers, c)
}

func (r *Registry) remove(c *Controller) {
	for i, existing := range r.controllers {
		if existing == c {
			r.controllers = append(r.controllers[:i:i], r.controllers[i+1:]...)
			return
		}
	}
}
