package schema

import (
	"reflect"
	"strings"

	"github.com/BaSui01/promptcast/types"
)

// DescriptorOf derives a descriptor from the type parameter T.
func DescriptorOf[T any]() (*types.Descriptor, error) {
	return DescriptorFor(reflect.TypeOf((*T)(nil)).Elem())
}

// DescriptorFor derives a descriptor from a Go type via reflection. Structs
// become objects with fields in declaration order (json tag names honored,
// "-" skipped, omitempty marks the field optional), slices and arrays become
// arrays, bool becomes boolean, string becomes string, and every numeric
// kind becomes number. Pointers are dereferenced. Maps, channels, functions,
// interfaces, and recursive types are rejected with a PRECONDITION_FAILED
// error.
func DescriptorFor(t reflect.Type) (*types.Descriptor, error) {
	return descriptorFor(t, make(map[reflect.Type]bool))
}

func descriptorFor(t reflect.Type, visited map[reflect.Type]bool) (*types.Descriptor, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return types.NewString(), nil
	case reflect.Bool:
		return types.NewBoolean(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return types.NewNumber(), nil
	case reflect.Slice, reflect.Array:
		elem, err := descriptorFor(t.Elem(), visited)
		if err != nil {
			return nil, err
		}
		return types.NewArray(elem), nil
	case reflect.Struct:
		if visited[t] {
			return nil, types.NewErrorf(types.ErrPrecondition, "recursive type %s is not supported", t)
		}
		visited[t] = true
		defer delete(visited, t)

		fields := make([]types.Field, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, optional, skip := parseJSONTag(sf)
			if skip {
				continue
			}
			fd, err := descriptorFor(sf.Type, visited)
			if err != nil {
				return nil, err
			}
			fields = append(fields, types.Field{Name: name, Type: fd, Optional: optional})
		}
		return types.NewObject(fields...), nil
	}
	return nil, types.NewErrorf(types.ErrPrecondition, "unsupported type kind %s", t.Kind())
}

func parseJSONTag(sf reflect.StructField) (name string, optional, skip bool) {
	name = sf.Name
	tag := sf.Tag.Get("json")
	if tag == "" {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" && len(parts) == 1 {
		return "", false, true
	}
	if parts[0] != "" {
		name = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			optional = true
		}
	}
	return name, optional, false
}
