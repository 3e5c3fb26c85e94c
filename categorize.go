package promptcast

import (
	"context"
	"strings"

	"github.com/BaSui01/promptcast/prompt"
	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

// Categorize classifies the prompt into exactly one of the allowed values,
// returned with the spelling and capitalization given by the caller.
//
// Both an empty allowed set and an empty prompt are precondition errors:
// there is no sensible default category.
func (c *Caster) Categorize(ctx context.Context, text string, allowed []string, opts ...CallOption) (string, error) {
	if len(allowed) == 0 {
		return "", types.NewError(types.ErrPrecondition, "allowed values must not be empty")
	}
	if strings.TrimSpace(text) == "" {
		return "", types.NewError(types.ErrPrecondition, "prompt is empty: no default category exists")
	}
	o := c.callOptions(opts)

	preq, err := prompt.Categorize(text, allowed)
	if err != nil {
		return "", err
	}

	var result string
	err = c.runCast(ctx, "categorize", preq, c.model(o), func(out *castOutcome) (bool, error) {
		v, err := schema.Decode(out.arguments, preq.Parameters, preq.Wrapped)
		if err != nil {
			return false, err
		}
		result = v.(string)
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
