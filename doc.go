// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package promptcast converts free-form prompts into strongly typed values
by forcing an LLM through a function-calling schema.

Usage:

	import "github.com/BaSui01/promptcast"

	c, err := promptcast.New(promptcast.WithProvider(provider))

	ok, err := c.Bool(ctx, "Is the Atlantic larger than the Baltic?")
	color, err := c.Categorize(ctx, "My favorite color is red", []string{"red", "blue", "green"})
	bands, err := c.List(ctx, "Name some rock bands", nil, promptcast.WithMaxValues(3))
	answer, err := promptcast.AsType[int](ctx, c, "What is 2+2?")
	text, err := c.Text(ctx, "What is the capital of France?")

Every operation derives a JSON schema for the expected shape, forces the
model to call a function named "answer" with temperature 0, retries
transient upstream failures with exponential backoff, and validates the
structured arguments before returning a typed result. Decoding failures
are never retried; the retry boundary is the network call alone.

Construction requires a provider ([WithProvider] or [NewFromConfig]).
Everything else has defaults: a nop logger, the standard retry budget of
ten attempts starting at 500ms, and list bounds of one to five values.
*/
package promptcast
