package promptcast

import (
	"context"
	"strings"

	"github.com/BaSui01/promptcast/prompt"
)

// Text answers the prompt as free text, reproduced verbatim with no
// conversational filler. No schema is involved and the content is not
// validated. An empty prompt returns an empty string without contacting
// the provider.
func (c *Caster) Text(ctx context.Context, text string, opts ...CallOption) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	o := c.callOptions(opts)

	preq := prompt.Text(text)

	var result string
	err := c.runCast(ctx, "text", preq, c.model(o), func(out *castOutcome) (bool, error) {
		result = out.content
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
