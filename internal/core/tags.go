package core

import (
	"reflect"
	"strings"
)

// StructTag holds the options parsed from a `form` struct tag.
type StructTag struct {
	Ignore bool
	Name   string
}

// ParseTag parses the `form` tag of field. The first comma separated element is
// an alternative path name, "-" excludes the field from paths and equality.
func ParseTag(field reflect.StructField) StructTag {
	tag := field.Tag.Get("form")
	if tag == "" {
		return StructTag{}
	}

	st := StructTag{}
	parts := strings.Split(tag, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case part == "-":
			st.Ignore = true
		case i == 0:
			st.Name = part
		}
	}

	return st
}
