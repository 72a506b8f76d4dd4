package fieldarray

import (
	"reflect"

	"github.com/brunoga/fieldarray/internal/core"
)

// RegisterEqual sets how two values of type T are compared. It decides
// whether Update reports a change and whether a rewritten array differs from
// the entries on settle. Registrations are process wide.
func RegisterEqual[T any](fn func(a, b T) bool) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	core.RegisterCustomEqual(typ, func(a, b any) bool {
		return fn(a.(T), b.(T))
	})
}
