package tokenizer

import (
	"unicode/utf8"

	"github.com/BaSui01/promptcast/types"
)

// Estimator is a character-count-based token estimator. It
// distinguishes CJK and ASCII characters for better accuracy than a
// naive len/4 approach.
type Estimator struct {
	model     string
	maxTokens int
}

// NewEstimator creates a generic estimator. A non-positive maxTokens
// defaults to 4096.
func NewEstimator(model string, maxTokens int) *Estimator {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Estimator{
		model:     model,
		maxTokens: maxTokens,
	}
}

func (e *Estimator) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	totalChars := utf8.RuneCountInString(text)
	cjkCount := 0
	for _, r := range text {
		if isCJK(r) {
			cjkCount++
		}
	}

	// CJK characters ~1.5 chars/token, ASCII ~4 chars/token.
	cjkTokens := float64(cjkCount) / 1.5
	asciiTokens := float64(totalChars-cjkCount) / 4.0
	estimated := int(cjkTokens + asciiTokens)

	if estimated == 0 {
		estimated = 1
	}
	return estimated, nil
}

func (e *Estimator) CountMessages(messages []types.Message) (int, error) {
	total := 0
	for _, msg := range messages {
		// Each message carries ~4 tokens of overhead (role markers,
		// separators).
		tokens, err := e.CountTokens(msg.Content)
		if err != nil {
			return 0, err
		}
		total += tokens + 4
	}
	// Conversation-end overhead.
	total += 3
	return total, nil
}

func (e *Estimator) MaxTokens() int {
	return e.maxTokens
}

func (e *Estimator) Name() string {
	return "estimator"
}

// isCJK returns true if the rune is a CJK character.
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0xF900 && r <= 0xFAFF) || // CJK Compatibility Ideographs
		(r >= 0x3000 && r <= 0x303F) || // CJK Symbols and Punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // Halfwidth and Fullwidth Forms
}
