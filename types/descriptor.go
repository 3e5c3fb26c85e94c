package types

// Kind discriminates the variants of a Descriptor.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Descriptor describes the shape of a value expected back from the model.
// It is a closed tagged variant: Kind selects which of the remaining fields
// are meaningful. Descriptors are treated as immutable once handed to the
// library; use Clone before modifying a shared one.
type Descriptor struct {
	Kind Kind `json:"kind"`

	// Enum variant: the allowed string values.
	Values []string `json:"values,omitempty"`

	// Array variant: element type and optional count bounds.
	Elem     *Descriptor `json:"elem,omitempty"`
	MinItems *int        `json:"min_items,omitempty"`
	MaxItems *int        `json:"max_items,omitempty"`

	// Object variant: named members in declaration order.
	Fields []Field `json:"fields,omitempty"`
}

// Field is a single named member of an object descriptor. Non-optional
// fields become required in the derived schema.
type Field struct {
	Name     string      `json:"name"`
	Type     *Descriptor `json:"type"`
	Optional bool        `json:"optional,omitempty"`
}

// NewString creates a descriptor for a bare string value.
func NewString() *Descriptor {
	return &Descriptor{Kind: KindString}
}

// NewNumber creates a descriptor for a numeric value.
func NewNumber() *Descriptor {
	return &Descriptor{Kind: KindNumber}
}

// NewBoolean creates a descriptor for a boolean value.
func NewBoolean() *Descriptor {
	return &Descriptor{Kind: KindBoolean}
}

// NewEnum creates a descriptor restricted to the given string values.
func NewEnum(values ...string) *Descriptor {
	return &Descriptor{Kind: KindEnum, Values: values}
}

// NewArray creates a descriptor for an array of elem.
func NewArray(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindArray, Elem: elem}
}

// NewObject creates a descriptor for an object with the given fields.
func NewObject(fields ...Field) *Descriptor {
	return &Descriptor{Kind: KindObject, Fields: fields}
}

// NewField creates a required object field.
func NewField(name string, d *Descriptor) Field {
	return Field{Name: name, Type: d}
}

// NewOptionalField creates an optional object field.
func NewOptionalField(name string, d *Descriptor) Field {
	return Field{Name: name, Type: d, Optional: true}
}

// WithMinItems sets the minimum element count on an array descriptor.
func (d *Descriptor) WithMinItems(n int) *Descriptor {
	d.MinItems = &n
	return d
}

// WithMaxItems sets the maximum element count on an array descriptor.
func (d *Descriptor) WithMaxItems(n int) *Descriptor {
	d.MaxItems = &n
	return d
}

// Validate checks that the variant is well-formed: the kind is one of the
// closed set, enums carry at least one value, array elements and field types
// are present, and field names are unique. Returns a PRECONDITION_FAILED
// error describing the first problem found.
func (d *Descriptor) Validate() error {
	return d.validate("")
}

func (d *Descriptor) validate(path string) error {
	if d == nil {
		return NewError(ErrPrecondition, "descriptor is nil").WithPath(path)
	}
	switch d.Kind {
	case KindString, KindNumber, KindBoolean:
		return nil
	case KindEnum:
		if len(d.Values) == 0 {
			return NewError(ErrPrecondition, "enum descriptor has no values").WithPath(path)
		}
		return nil
	case KindArray:
		if d.Elem == nil {
			return NewError(ErrPrecondition, "array descriptor has no element type").WithPath(path)
		}
		if d.MinItems != nil && *d.MinItems < 0 {
			return NewError(ErrPrecondition, "array minItems is negative").WithPath(path)
		}
		if d.MinItems != nil && d.MaxItems != nil && *d.MinItems > *d.MaxItems {
			return NewError(ErrPrecondition, "array minItems exceeds maxItems").WithPath(path)
		}
		return d.Elem.validate(joinPath(path, "[]"))
	case KindObject:
		seen := make(map[string]bool, len(d.Fields))
		for _, f := range d.Fields {
			if f.Name == "" {
				return NewError(ErrPrecondition, "object field has no name").WithPath(path)
			}
			if seen[f.Name] {
				return NewErrorf(ErrPrecondition, "duplicate object field %q", f.Name).WithPath(path)
			}
			seen[f.Name] = true
			if err := f.Type.validate(joinPath(path, f.Name)); err != nil {
				return err
			}
		}
		return nil
	default:
		return NewErrorf(ErrPrecondition, "unknown descriptor kind %q", d.Kind).WithPath(path)
	}
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	out := &Descriptor{Kind: d.Kind}
	if d.Values != nil {
		out.Values = append([]string(nil), d.Values...)
	}
	out.Elem = d.Elem.Clone()
	if d.MinItems != nil {
		v := *d.MinItems
		out.MinItems = &v
	}
	if d.MaxItems != nil {
		v := *d.MaxItems
		out.MaxItems = &v
	}
	if d.Fields != nil {
		out.Fields = make([]Field, len(d.Fields))
		for i, f := range d.Fields {
			out.Fields[i] = Field{Name: f.Name, Type: f.Type.Clone(), Optional: f.Optional}
		}
	}
	return out
}

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	if segment == "[]" {
		return base + "[]"
	}
	return base + "." + segment
}
