package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// PathPart is one segment of a parsed value path.
type PathPart struct {
	Key     string
	Index   int
	IsIndex bool
}

func (p PathPart) Equals(other PathPart) bool {
	if p.IsIndex != other.IsIndex {
		return false
	}
	if p.IsIndex {
		return p.Index == other.Index
	}
	return p.Key == other.Key
}

func (p PathPart) String() string {
	if p.IsIndex {
		return strconv.Itoa(p.Index)
	}
	return p.Key
}

// ParsePath parses a dot/bracket path such as "invoice.items[2].sku" into its
// parts. Numeric bracket segments become indices, anything else (including
// quoted bracket segments) becomes a key.
func ParsePath(path string) []PathPart {
	if path == "" {
		return nil
	}

	var parts []PathPart
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		parts = append(parts, PathPart{Key: b.String()})
		b.Reset()
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end == -1 {
				// Unterminated bracket, treat the rest as a plain key.
				b.WriteString(path[i:])
				i = len(path)
				continue
			}
			token := path[i+1 : i+end]
			i += end
			if len(token) >= 2 && (token[0] == '"' || token[0] == '\'') && token[len(token)-1] == token[0] {
				parts = append(parts, PathPart{Key: token[1 : len(token)-1]})
				continue
			}
			if idx, err := strconv.Atoi(token); err == nil && idx >= 0 {
				parts = append(parts, PathPart{Key: token, Index: idx, IsIndex: true})
			} else {
				parts = append(parts, PathPart{Key: token})
			}
		default:
			b.WriteByte(c)
		}
	}
	flush()

	return parts
}

// JoinParts renders parts back into dot/bracket notation.
func JoinParts(parts []PathPart) string {
	var b strings.Builder
	for i, part := range parts {
		if part.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.Index))
			b.WriteByte(']')
			continue
		}
		if strings.ContainsAny(part.Key, ".[]") {
			b.WriteString(`["`)
			b.WriteString(part.Key)
			b.WriteString(`"]`)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part.Key)
	}
	return b.String()
}

// NormalizePath rewrites a path into its canonical dot/bracket form, so
// "a.0.b" and "a[0].b" compare equal.
func NormalizePath(path string) string {
	parts := ParsePath(path)
	for i := range parts {
		if !parts[i].IsIndex {
			if idx, err := strconv.Atoi(parts[i].Key); err == nil && idx >= 0 {
				parts[i] = PathPart{Key: parts[i].Key, Index: idx, IsIndex: true}
			}
		}
	}
	return JoinParts(parts)
}

// IndexPath returns the path of element i of the array at path.
func IndexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// HasPathPrefix reports whether path equals prefix or lives underneath it.
func HasPathPrefix(path, prefix string) bool {
	path = NormalizePath(path)
	prefix = NormalizePath(prefix)
	if path == prefix {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	next := path[len(prefix)]
	return next == '.' || next == '['
}

// Get reads the value at path inside root. The second return is false when any
// segment is missing or cannot be traversed.
func Get(root any, path string) (any, bool) {
	current := reflect.ValueOf(root)
	for _, part := range ParsePath(path) {
		next, ok := child(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return ValueToInterface(current), current.IsValid()
}

func child(v reflect.Value, part PathPart) (reflect.Value, bool) {
	v = Dereference(v)
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		idx := part.Index
		if !part.IsIndex {
			var err error
			if idx, err = strconv.Atoi(part.Key); err != nil {
				return reflect.Value{}, false
			}
		}
		if idx < 0 || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		val := v.MapIndex(reflect.ValueOf(part.String()).Convert(v.Type().Key()))
		if !val.IsValid() {
			return reflect.Value{}, false
		}
		return val, true
	case reflect.Struct:
		sf, ok := FieldsOf(v.Type()).Lookup(part.String())
		if !ok {
			return reflect.Value{}, false
		}
		return v.Field(sf.Index), true
	}
	return reflect.Value{}, false
}

// Set writes value at path inside root, creating intermediate containers as
// needed. Only map[string]any and []any containers are writable; a segment that
// lands on anything else is replaced by a fresh container.
func Set(root map[string]any, path string, value any) error {
	parts := ParsePath(path)
	if len(parts) == 0 {
		return fmt.Errorf("path is empty")
	}
	if root == nil {
		return fmt.Errorf("root is nil")
	}
	_, err := setIn(root, parts, value)
	return err
}

func setIn(container any, parts []PathPart, value any) (any, error) {
	part := parts[0]
	last := len(parts) == 1

	switch c := container.(type) {
	case map[string]any:
		key := part.String()
		if last {
			c[key] = value
			return c, nil
		}
		updated, err := setIn(ensureContainer(c[key], parts[1]), parts[1:], value)
		if err != nil {
			return nil, err
		}
		c[key] = updated
		return c, nil
	case []any:
		if !part.IsIndex {
			return nil, fmt.Errorf("cannot use key %q on array", part.Key)
		}
		for len(c) <= part.Index {
			c = append(c, nil)
		}
		if last {
			c[part.Index] = value
			return c, nil
		}
		updated, err := setIn(ensureContainer(c[part.Index], parts[1]), parts[1:], value)
		if err != nil {
			return nil, err
		}
		c[part.Index] = updated
		return c, nil
	default:
		return nil, fmt.Errorf("cannot set %q in %T", part.Key, container)
	}
}

// ensureContainer returns existing when it is a writable container, otherwise
// a new one shaped for the next segment.
func ensureContainer(existing any, next PathPart) any {
	switch existing.(type) {
	case map[string]any:
		return existing
	case []any:
		if next.IsIndex {
			return existing
		}
	}
	if slice, ok := AsSlice(existing); ok && next.IsIndex {
		return slice
	}
	if next.IsIndex {
		return []any{}
	}
	return map[string]any{}
}

// Delete removes the value at path. Map keys are deleted and slice elements
// are spliced out. Deleting a missing path is not an error.
func Delete(root map[string]any, path string) error {
	parts := ParsePath(path)
	if len(parts) == 0 {
		return fmt.Errorf("path is empty")
	}
	parentPath := JoinParts(parts[:len(parts)-1])
	lastPart := parts[len(parts)-1]

	var parent any = root
	if parentPath != "" {
		var ok bool
		if parent, ok = Get(root, parentPath); !ok {
			return nil
		}
	}

	switch p := parent.(type) {
	case map[string]any:
		delete(p, lastPart.String())
		return nil
	case []any:
		if !lastPart.IsIndex {
			return fmt.Errorf("invalid slice index: %s", lastPart.Key)
		}
		if lastPart.Index >= len(p) {
			return nil
		}
		spliced := make([]any, 0, len(p)-1)
		spliced = append(spliced, p[:lastPart.Index]...)
		spliced = append(spliced, p[lastPart.Index+1:]...)
		return Set(root, parentPath, spliced)
	default:
		return fmt.Errorf("cannot delete from %T", parent)
	}
}

// AsSlice returns v as a []any when it is array-shaped. The returned slice is a
// shallow copy unless v already is a []any, in which case it is returned as is.
func AsSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := Dereference(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []any{}, true
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = ValueToInterface(rv.Index(i))
	}
	return out, true
}

func Dereference(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func ValueToInterface(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
