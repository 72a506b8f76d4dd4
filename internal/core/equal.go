package core

import (
	"reflect"
	"sync"
)

var (
	customEqualFuncs = make(map[reflect.Type]func(a, b any) bool)
	muEqual          sync.RWMutex
)

// RegisterCustomEqual registers an equality function used whenever both sides
// of a comparison have type typ.
func RegisterCustomEqual(typ reflect.Type, fn func(a, b any) bool) {
	muEqual.Lock()
	defer muEqual.Unlock()
	customEqualFuncs[typ] = fn
}

type visitKey struct {
	a, b uintptr
	typ  reflect.Type
}

var visitedPool = sync.Pool{
	New: func() any {
		return make(map[visitKey]bool)
	},
}

// Equal performs a deep equality check between a and b. Cycles are handled,
// struct fields tagged `form:"-"` are skipped and a nil slice or map equals an
// empty one.
func Equal(a, b any) bool {
	return ValueEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

// ValueEqual performs a deep equality check between two reflect.Values.
func ValueEqual(a, b reflect.Value) bool {
	visited := visitedPool.Get().(map[visitKey]bool)
	defer func() {
		for k := range visited {
			delete(visited, k)
		}
		visitedPool.Put(visited)
	}()

	return equalRecursive(a, b, visited)
}

func equalRecursive(a, b reflect.Value, visited map[visitKey]bool) bool {
	if a.IsValid() && a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.IsValid() && b.Kind() == reflect.Interface {
		b = b.Elem()
	}

	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}

	if a.Type() != b.Type() {
		return false
	}

	if a.CanInterface() && b.CanInterface() {
		muEqual.RLock()
		fn, ok := customEqualFuncs[a.Type()]
		muEqual.RUnlock()
		if ok {
			return fn(a.Interface(), b.Interface())
		}
	}

	kind := a.Kind()

	switch kind {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	}

	if kind == reflect.Slice || kind == reflect.Map {
		if a.Len() == 0 && b.Len() == 0 {
			return true
		}
	}

	if kind == reflect.Pointer || kind == reflect.Slice || kind == reflect.Map {
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		ptrA := a.Pointer()
		ptrB := b.Pointer()
		if ptrA == ptrB && (kind != reflect.Slice || a.Len() == b.Len()) {
			return true
		}

		k := visitKey{ptrA, ptrB, a.Type()}
		if visited[k] {
			return true
		}
		visited[k] = true
	}

	switch kind {
	case reflect.Pointer:
		return equalRecursive(a.Elem(), b.Elem(), visited)

	case reflect.Struct:
		for _, sf := range FieldsOf(a.Type()).List {
			if sf.Ignore {
				continue
			}
			if !equalRecursive(a.Field(sf.Index), b.Field(sf.Index), visited) {
				return false
			}
		}
		return true

	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equalRecursive(a.Index(i), b.Index(i), visited) {
				return false
			}
		}
		return true

	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			valB := b.MapIndex(iter.Key())
			if !valB.IsValid() {
				return false
			}
			if !equalRecursive(iter.Value(), valB, visited) {
				return false
			}
		}
		return true

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return a.Pointer() == b.Pointer()

	default:
		if a.CanInterface() && b.CanInterface() {
			return reflect.DeepEqual(a.Interface(), b.Interface())
		}
		return false
	}
}
