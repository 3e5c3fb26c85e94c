package promptcast

import (
	"context"
	"strings"

	"github.com/BaSui01/promptcast/prompt"
	"github.com/BaSui01/promptcast/schema"
)

// Bool answers a yes/no question as a boolean. An empty or all-whitespace
// prompt returns false without contacting the provider.
func (c *Caster) Bool(ctx context.Context, text string, opts ...CallOption) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	o := c.callOptions(opts)

	preq, err := prompt.Bool(text)
	if err != nil {
		return false, err
	}

	var result bool
	err = c.runCast(ctx, "bool", preq, c.model(o), func(out *castOutcome) (bool, error) {
		v, err := schema.Decode(out.arguments, preq.Parameters, preq.Wrapped)
		if err != nil {
			return false, err
		}
		result = v.(bool)
		return false, nil
	})
	if err != nil {
		return false, err
	}
	return result, nil
}
