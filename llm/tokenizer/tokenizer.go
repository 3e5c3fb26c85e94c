// Package tokenizer provides prompt token counting, with exact
// tiktoken counts for OpenAI-family models and a character-based
// estimator for everything else.
package tokenizer

import (
	"strings"

	"github.com/BaSui01/promptcast/types"
)

// Tokenizer counts tokens for a single model family.
type Tokenizer interface {
	// CountTokens returns the token count for the given text.
	CountTokens(text string) (int, error)

	// CountMessages returns the total token count for a message list,
	// including per-message overhead (role markers, separators).
	CountMessages(messages []types.Message) (int, error)

	// MaxTokens returns the model's context window size.
	MaxTokens() int

	// Name returns the tokenizer's name.
	Name() string
}

// ForModel picks a tokenizer for the given model name. Models with a
// known tiktoken encoding get exact counts; everything else gets the
// estimator.
func ForModel(model string) Tokenizer {
	if _, ok := encodingFor(model); ok {
		return NewTiktoken(model)
	}
	return NewEstimator(model, 0)
}

// encodingFor resolves a model name to its tiktoken encoding, trying
// an exact match first and then the longest known prefix, so that
// "gpt-4o-mini" resolves through gpt-4o rather than gpt-4.
func encodingFor(model string) (modelEncoding, bool) {
	if info, ok := modelEncodings[model]; ok {
		return info, true
	}

	var (
		best    modelEncoding
		bestLen = -1
	)
	for prefix, info := range modelEncodings {
		if strings.HasPrefix(model, prefix) && len(prefix) > bestLen {
			best = info
			bestLen = len(prefix)
		}
	}
	return best, bestLen >= 0
}
