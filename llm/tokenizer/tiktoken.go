package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/promptcast/types"
)

// Tiktoken counts tokens exactly for OpenAI-family models.
type Tiktoken struct {
	model     string
	encoding  string
	maxTokens int
	enc       *tiktoken.Tiktoken
	once      sync.Once
	initErr   error
}

type modelEncoding struct {
	encoding  string
	maxTokens int
}

// modelEncodings maps model names to their tiktoken encoding and
// context size. Lookups fall back to prefix matching, so "gpt-5"
// covers gpt-5-mini and dated snapshots alike.
var modelEncodings = map[string]modelEncoding{
	"gpt-5":         {encoding: "o200k_base", maxTokens: 200000},
	"gpt-4o":        {encoding: "o200k_base", maxTokens: 128000},
	"gpt-4":         {encoding: "cl100k_base", maxTokens: 128000},
	"gpt-3.5-turbo": {encoding: "cl100k_base", maxTokens: 16385},
}

// NewTiktoken creates a tiktoken-backed tokenizer for the given model.
// Unknown models default to cl100k_base.
func NewTiktoken(model string) *Tiktoken {
	info, ok := encodingFor(model)
	if !ok {
		info = modelEncoding{encoding: "cl100k_base", maxTokens: 8192}
	}

	return &Tiktoken{
		model:     model,
		encoding:  info.encoding,
		maxTokens: info.maxTokens,
	}
}

// init lazily loads the encoding; the first use may fetch BPE data.
func (t *Tiktoken) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = fmt.Errorf("init tiktoken encoding %s: %w", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *Tiktoken) CountTokens(text string) (int, error) {
	if err := t.init(); err != nil {
		return 0, err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *Tiktoken) CountMessages(messages []types.Message) (int, error) {
	if err := t.init(); err != nil {
		return 0, err
	}

	total := 0
	for _, msg := range messages {
		// Per-message overhead: <|start|>role\n content<|end|>\n
		total += 4
		total += len(t.enc.Encode(msg.Content, nil, nil))
		total += len(t.enc.Encode(string(msg.Role), nil, nil))
	}
	total += 3 // conversation-end overhead
	return total, nil
}

func (t *Tiktoken) MaxTokens() int {
	return t.maxTokens
}

func (t *Tiktoken) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}
