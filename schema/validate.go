package schema

import (
	"fmt"
	"sort"

	"github.com/BaSui01/promptcast/types"
)

// Validate checks a decoded JSON value against the document. It fails fast:
// the first mismatch is returned as a VALIDATION_FAILED error carrying the
// field path and an expected-vs-actual description. Properties are visited
// in sorted order so the reported violation is deterministic.
//
// Array count bounds (minItems/maxItems) are not checked here. They ride the
// document as generation guidance and are enforced by the decode-side
// cardinality policy.
func Validate(value any, doc *Document) error {
	if err := validateValue(value, doc, ""); err != nil {
		return err
	}
	return nil
}

func validateValue(v any, doc *Document, path string) *types.Error {
	switch doc.Type {
	case TypeObject:
		return validateObject(v, doc, path)
	case TypeArray:
		return validateArray(v, doc, path)
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return mismatch(path, "string", v)
		}
		if len(doc.Enum) > 0 && !containsString(doc.Enum, s) {
			return types.NewErrorf(types.ErrValidation, "value %q is not one of the allowed values", s).WithPath(path)
		}
		return nil
	case TypeNumber:
		if _, ok := v.(float64); !ok {
			return mismatch(path, "number", v)
		}
		return nil
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean", v)
		}
		return nil
	}
	return types.NewErrorf(types.ErrValidation, "unsupported document type %q", doc.Type).WithPath(path)
}

func validateObject(v any, doc *Document, path string) *types.Error {
	m, ok := v.(map[string]any)
	if !ok {
		return mismatch(path, "object", v)
	}
	for _, name := range doc.Required {
		if _, present := m[name]; !present {
			return types.NewError(types.ErrValidation, "missing required field").WithPath(childPath(path, name))
		}
	}
	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val, present := m[name]
		if !present {
			continue
		}
		if err := validateValue(val, doc.Properties[name], childPath(path, name)); err != nil {
			return err
		}
	}
	// Keys outside the declared properties are ignored.
	return nil
}

func validateArray(v any, doc *Document, path string) *types.Error {
	arr, ok := v.([]any)
	if !ok {
		return mismatch(path, "array", v)
	}
	if doc.Items == nil {
		return nil
	}
	for i, elem := range arr {
		if err := validateValue(elem, doc.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func mismatch(path, expected string, v any) *types.Error {
	return types.NewErrorf(types.ErrValidation, "expected %s, got %s", expected, jsonTypeName(v)).WithPath(path)
}

// jsonTypeName names a decoded JSON value in schema vocabulary rather than
// leaking Go type names into user-facing errors.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func childPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
