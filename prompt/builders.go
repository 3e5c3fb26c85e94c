package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

const (
	boolSystem = "You decide whether the user's statement is true or false. " +
		"Call the answer function with exactly one boolean value."

	textSystem = "Answer the user's question. Reproduce only the answer itself, " +
		"verbatim, with no conversational filler or explanations."
)

// Bool builds a true/false request.
func Bool(user string) (*Request, error) {
	return build(user, boolSystem, "The boolean answer to the user's statement.", types.NewBoolean())
}

// Categorize builds a single-category request over the allowed values. The
// system instruction enumerates the values verbatim and demands exact
// spelling and capitalization.
func Categorize(user string, allowed []string) (*Request, error) {
	system := fmt.Sprintf(
		"Classify the user's text into exactly one of the following categories: %s. "+
			"Answer with the chosen category spelled exactly as listed, preserving capitalization. "+
			"Call the answer function with that single value.",
		quoteAll(allowed))
	return build(user, system, "The category that best matches the user's text.", types.NewEnum(allowed...))
}

// List builds a bounded-list request. A nil allowed set means any string is
// accepted. The system instruction states the count bounds, names the
// allowed set or the absence of one, and relaxes the phrasing when the
// minimum permits an empty answer or demands several.
func List(user string, allowed []string, minValues, maxValues int) (*Request, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract the values that match the user's text. Provide at least %d and at most %d values.", minValues, maxValues)
	if len(allowed) > 0 {
		fmt.Fprintf(&b, " Allowed values: %s. Answer with values spelled exactly as listed.", quoteAll(allowed))
	} else {
		b.WriteString(" There is no restriction on the allowed values.")
	}
	switch {
	case minValues == 0:
		b.WriteString(" You may answer with no values.")
	case minValues > 1:
		b.WriteString(" You may answer with multiple values.")
	}

	var elem *types.Descriptor
	if len(allowed) > 0 {
		elem = types.NewEnum(allowed...)
	} else {
		elem = types.NewString()
	}
	d := types.NewArray(elem).WithMinItems(minValues).WithMaxItems(maxValues)
	return build(user, b.String(), "The values that match the user's text.", d)
}

// Schema builds a request for a caller-supplied descriptor. No system
// instruction is added; the descriptor alone states the expected shape.
func Schema(user string, d *types.Descriptor) (*Request, error) {
	return build(user, "", "The answer to the user's question in the requested structure.", d)
}

// Text builds a free-text request. No function schema is attached; the raw
// completion content is the answer.
func Text(user string) *Request {
	return &Request{System: textSystem, User: user}
}

func build(user, system, description string, d *types.Descriptor) (*Request, error) {
	doc, wrapped, err := schema.Translate(d)
	if err != nil {
		return nil, err
	}
	return &Request{
		System:              system,
		User:                user,
		FunctionName:        FunctionName,
		FunctionDescription: description,
		Parameters:          doc,
		Wrapped:             wrapped,
	}, nil
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
