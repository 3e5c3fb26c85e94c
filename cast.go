package promptcast

import (
	"context"
	"strings"

	"github.com/BaSui01/promptcast/prompt"
	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

// Cast answers the prompt in the shape described by the descriptor and
// returns the decoded value: map[string]any for objects, []any for
// arrays, and the bare primitive otherwise.
//
// An empty prompt is decoded as an empty answer against the descriptor
// without contacting the provider; since an empty string is not valid
// JSON, that surfaces a decode error unless a future descriptor kind
// accepts it.
func (c *Caster) Cast(ctx context.Context, text string, d *types.Descriptor, opts ...CallOption) (any, error) {
	o := c.callOptions(opts)

	preq, err := prompt.Schema(text, d)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return schema.Decode([]byte(""), preq.Parameters, preq.Wrapped)
	}

	var result any
	err = c.runCast(ctx, "cast", preq, c.model(o), func(out *castOutcome) (bool, error) {
		v, err := schema.Decode(out.arguments, preq.Parameters, preq.Wrapped)
		if err != nil {
			return false, err
		}
		result = v
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AsType answers the prompt as a value of type T. The expected shape is
// derived from T by reflection, the model's answer is validated against
// it, and the result is unmarshalled into T.
func AsType[T any](ctx context.Context, c *Caster, text string, opts ...CallOption) (T, error) {
	var zero T
	d, err := schema.DescriptorOf[T]()
	if err != nil {
		return zero, err
	}
	v, err := c.Cast(ctx, text, d, opts...)
	if err != nil {
		return zero, err
	}
	var out T
	if err := schema.Unmarshal(v, &out); err != nil {
		return zero, err
	}
	return out, nil
}
