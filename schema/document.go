package schema

import "encoding/json"

// Type represents the JSON Schema types used in function-parameter documents.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Document is a JSON-schema-shaped description of the structured arguments
// the completion endpoint must return. One document is derived per request
// and discarded after use.
type Document struct {
	Type        Type                 `json:"type,omitempty"`
	Description string               `json:"description,omitempty"`
	Properties  map[string]*Document `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Items       *Document            `json:"items,omitempty"`
	Enum        []string             `json:"enum,omitempty"`
	MinItems    *int                 `json:"minItems,omitempty"`
	MaxItems    *int                 `json:"maxItems,omitempty"`
}

// NewObject creates a new object document.
func NewObject() *Document {
	return &Document{
		Type:       TypeObject,
		Properties: make(map[string]*Document),
	}
}

// NewArray creates a new array document with the given item document.
func NewArray(items *Document) *Document {
	return &Document{
		Type:  TypeArray,
		Items: items,
	}
}

// NewString creates a new string document.
func NewString() *Document {
	return &Document{Type: TypeString}
}

// NewNumber creates a new number document.
func NewNumber() *Document {
	return &Document{Type: TypeNumber}
}

// NewBoolean creates a new boolean document.
func NewBoolean() *Document {
	return &Document{Type: TypeBoolean}
}

// NewEnum creates a new string document restricted to the given values.
func NewEnum(values ...string) *Document {
	return &Document{
		Type: TypeString,
		Enum: append([]string(nil), values...),
	}
}

// WithDescription sets the description.
func (d *Document) WithDescription(desc string) *Document {
	d.Description = desc
	return d
}

// AddProperty adds a property to an object document.
func (d *Document) AddProperty(name string, prop *Document) *Document {
	if d.Properties == nil {
		d.Properties = make(map[string]*Document)
	}
	d.Properties[name] = prop
	return d
}

// AddRequired marks properties as required.
func (d *Document) AddRequired(names ...string) *Document {
	d.Required = append(d.Required, names...)
	return d
}

// WithMinItems sets the minimum item count on an array document.
func (d *Document) WithMinItems(min int) *Document {
	d.MinItems = &min
	return d
}

// WithMaxItems sets the maximum item count on an array document.
func (d *Document) WithMaxItems(max int) *Document {
	d.MaxItems = &max
	return d
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Type:        d.Type,
		Description: d.Description,
		Items:       d.Items.Clone(),
	}
	if d.Properties != nil {
		out.Properties = make(map[string]*Document, len(d.Properties))
		for name, prop := range d.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if d.Required != nil {
		out.Required = append([]string(nil), d.Required...)
	}
	if d.Enum != nil {
		out.Enum = append([]string(nil), d.Enum...)
	}
	if d.MinItems != nil {
		v := *d.MinItems
		out.MinItems = &v
	}
	if d.MaxItems != nil {
		v := *d.MaxItems
		out.MaxItems = &v
	}
	return out
}

// ToJSON serializes the document to JSON.
func (d *Document) ToJSON() (json.RawMessage, error) {
	return json.Marshal(d)
}
