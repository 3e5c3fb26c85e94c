package promptcast

// CallOption tunes a single cast call.
type CallOption func(*callOptions)

type callOptions struct {
	highCapability bool
	minValues      int
	maxValues      int
}

// WithHighCapability selects the higher-capability model for this call.
// The default model is the lower-cost, lower-latency one.
func WithHighCapability() CallOption {
	return func(o *callOptions) { o.highCapability = true }
}

// WithMinValues sets the minimum number of list elements. Fewer valid
// matches than this fail with a cardinality error.
func WithMinValues(n int) CallOption {
	return func(o *callOptions) { o.minValues = n }
}

// WithMaxValues sets the maximum number of list elements. Extra elements
// beyond it are silently dropped, keeping the model's earliest answers.
func WithMaxValues(n int) CallOption {
	return func(o *callOptions) { o.maxValues = n }
}

func (c *Caster) callOptions(opts []CallOption) callOptions {
	o := callOptions{
		minValues: c.lists.MinValues,
		maxValues: c.lists.MaxValues,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
