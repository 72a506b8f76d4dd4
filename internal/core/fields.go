package core

import (
	"reflect"
	"strings"
	"sync"
)

// StructField is one field of a struct type as seen by paths and equality.
type StructField struct {
	Index  int
	Ignore bool
}

// StructFields lists every field of a struct type in declaration order and
// indexes the exported ones by the keys a path may use for them.
type StructFields struct {
	List  []StructField
	byKey map[string]int
}

// Lookup returns the field addressed by key. A `form` tag name wins over a
// `json` tag name, which wins over the Go field name. Unexported fields and
// fields tagged `form:"-"` are never addressable.
func (s *StructFields) Lookup(key string) (StructField, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return StructField{}, false
	}
	return s.List[i], true
}

var structFieldCache sync.Map // map[reflect.Type]*StructFields

// FieldsOf returns the cached field index of a struct type.
func FieldsOf(typ reflect.Type) *StructFields {
	if cached, ok := structFieldCache.Load(typ); ok {
		return cached.(*StructFields)
	}

	fields := &StructFields{byKey: make(map[string]int)}
	if typ.Kind() == reflect.Struct {
		var goNames, jsonNames, formNames []int
		for i := 0; i < typ.NumField(); i++ {
			sf := typ.Field(i)
			tag := ParseTag(sf)
			fields.List = append(fields.List, StructField{Index: i, Ignore: tag.Ignore})
			if !sf.IsExported() || tag.Ignore {
				continue
			}
			goNames = append(goNames, i)
			if name := jsonName(sf); name != "" {
				jsonNames = append(jsonNames, i)
			}
			if tag.Name != "" {
				formNames = append(formNames, i)
			}
		}

		// Lowest precedence first so later writes win.
		for _, i := range goNames {
			fields.byKey[typ.Field(i).Name] = i
		}
		for _, i := range jsonNames {
			fields.byKey[jsonName(typ.Field(i))] = i
		}
		for _, i := range formNames {
			fields.byKey[ParseTag(typ.Field(i)).Name] = i
		}
	}

	actual, _ := structFieldCache.LoadOrStore(typ, fields)
	return actual.(*StructFields)
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
