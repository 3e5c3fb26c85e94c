package promptcast

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/promptcast/prompt"
	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

// List extracts the values matching the prompt. A nil allowed set accepts
// any string; a non-nil one constrains answers to its members. Bounds
// default to one through five values and are tuned per call with
// WithMinValues and WithMaxValues.
//
// Cardinality is asymmetric: fewer valid matches than the minimum fail
// with a cardinality error, while matches beyond the maximum are silently
// dropped, keeping the model's earliest answers.
//
// An empty prompt never reaches the provider: it returns an empty slice
// when the minimum is zero and a cardinality error otherwise.
func (c *Caster) List(ctx context.Context, text string, allowed []string, opts ...CallOption) ([]string, error) {
	o := c.callOptions(opts)
	if o.minValues < 0 {
		return nil, types.NewErrorf(types.ErrPrecondition, "minValues must not be negative, got %d", o.minValues)
	}
	if o.minValues >= o.maxValues {
		return nil, types.NewErrorf(types.ErrPrecondition,
			"minValues must be less than maxValues, got %d >= %d", o.minValues, o.maxValues)
	}
	if strings.TrimSpace(text) == "" {
		if o.minValues == 0 {
			return []string{}, nil
		}
		return nil, types.NewErrorf(types.ErrCardinality,
			"must provide at least %d values, but the prompt is empty", o.minValues)
	}

	preq, err := prompt.List(text, allowed, o.minValues, o.maxValues)
	if err != nil {
		return nil, err
	}

	var result []string
	err = c.runCast(ctx, "list", preq, c.model(o), func(out *castOutcome) (bool, error) {
		values, truncated, err := schema.DecodeStringList(out.arguments, preq.Parameters, preq.Wrapped, o.minValues, o.maxValues)
		if err != nil {
			return false, err
		}
		if truncated {
			c.logger.Debug("list answer truncated",
				zap.Int("max_values", o.maxValues),
				zap.Int("kept", len(values)))
		}
		result = values
		return truncated, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
