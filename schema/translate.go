package schema

import "github.com/BaSui01/promptcast/types"

// Translate converts a type descriptor into the function-parameters document
// sent to the completion endpoint. The returned bool reports whether the
// descriptor was wrapped in a synthetic {value: T} object: the
// structured-output mechanism requires an object at the top level, so every
// non-object root is wrapped. The same flag must be handed back to Decode so
// that unwrapping exactly mirrors the wrap decision.
//
// Translate is pure: it never mutates the descriptor, and equal descriptors
// produce structurally identical documents. A malformed descriptor fails
// with a PRECONDITION_FAILED error.
func Translate(d *types.Descriptor) (*Document, bool, error) {
	if err := d.Validate(); err != nil {
		return nil, false, err
	}
	doc := translate(d)
	if d.Kind == types.KindObject {
		return doc, false, nil
	}
	wrapper := NewObject().
		AddProperty("value", doc).
		AddRequired("value")
	return wrapper, true, nil
}

func translate(d *types.Descriptor) *Document {
	switch d.Kind {
	case types.KindString:
		return NewString()
	case types.KindNumber:
		return NewNumber()
	case types.KindBoolean:
		return NewBoolean()
	case types.KindEnum:
		return NewEnum(d.Values...)
	case types.KindArray:
		doc := NewArray(translate(d.Elem))
		if d.MinItems != nil {
			doc.WithMinItems(*d.MinItems)
		}
		if d.MaxItems != nil {
			doc.WithMaxItems(*d.MaxItems)
		}
		return doc
	case types.KindObject:
		doc := NewObject()
		for _, f := range d.Fields {
			doc.AddProperty(f.Name, translate(f.Type))
			if !f.Optional {
				doc.AddRequired(f.Name)
			}
		}
		return doc
	}
	// Unreachable: Validate rejects unknown kinds.
	return nil
}
