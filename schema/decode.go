package schema

import (
	"encoding/json"

	"github.com/BaSui01/promptcast/types"
)

// Decode parses the structured-argument text returned by the model,
// validates it against the document, and unwraps the synthetic value
// envelope when wrapped is true. wrapped must be the flag returned by the
// Translate call that produced doc.
//
// A parse failure is a DECODE_FAILED error; a structural mismatch is a
// VALIDATION_FAILED error. Neither is retried: the retry boundary is the
// network call, not decoding.
func Decode(raw []byte, doc *Document, wrapped bool) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, types.NewError(types.ErrDecode, "arguments are not valid JSON").WithCause(err)
	}
	if err := Validate(v, doc); err != nil {
		return nil, err
	}
	if wrapped {
		// Validation guarantees an object carrying the required value field.
		return v.(map[string]any)["value"], nil
	}
	return v, nil
}

// DecodeStringList decodes an array-of-strings response and applies the
// cardinality policy: fewer elements than minValues fail with
// CARDINALITY_TOO_FEW, while more than maxValues are silently truncated to
// the first maxValues. The second return reports whether truncation
// happened, so callers can log it.
func DecodeStringList(raw []byte, doc *Document, wrapped bool, minValues, maxValues int) ([]string, bool, error) {
	v, err := Decode(raw, doc, wrapped)
	if err != nil {
		return nil, false, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false, mismatch("", "array", v)
	}
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, false, mismatch("", "array of strings", v)
		}
		out = append(out, s)
	}
	if len(out) < minValues {
		return nil, false, types.NewErrorf(types.ErrCardinality, "must provide at least %d values", minValues)
	}
	if len(out) > maxValues {
		return out[:maxValues], true, nil
	}
	return out, false, nil
}

// Unmarshal re-encodes a decoded value into out. Used by the generic typed
// path after Decode, where out is a pointer to the caller's target type.
func Unmarshal(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return types.NewError(types.ErrDecode, "re-encode decoded value").WithCause(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return types.NewError(types.ErrDecode, "decoded value does not fit the target type").WithCause(err)
	}
	return nil
}
