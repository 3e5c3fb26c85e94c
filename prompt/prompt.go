package prompt

import (
	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

// FunctionName is the name of the function the model is forced to call on
// every tool-calling shape.
const FunctionName = "answer"

// Request is an assembled completion request: the message sequence plus
// the function-call directive. Wrapped records whether the parameter
// document wraps the expected value in a synthetic {value: T} object; the
// decoder must mirror that decision.
type Request struct {
	System              string
	User                string
	FunctionName        string
	FunctionDescription string
	Parameters          *schema.Document
	Wrapped             bool
}

// Messages returns the ordered message sequence, system instruction first
// when present.
func (r *Request) Messages() []types.Message {
	msgs := make([]types.Message, 0, 2)
	if r.System != "" {
		msgs = append(msgs, types.NewSystemMessage(r.System))
	}
	msgs = append(msgs, types.NewUserMessage(r.User))
	return msgs
}

// Tool returns the function-calling schema for the request. Calling it on
// a free-text request is a programming error and fails with a
// precondition error.
func (r *Request) Tool() (types.ToolSchema, error) {
	if r.Parameters == nil {
		return types.ToolSchema{}, types.NewError(types.ErrPrecondition, "request has no function parameters")
	}
	raw, err := r.Parameters.ToJSON()
	if err != nil {
		return types.ToolSchema{}, types.NewError(types.ErrPrecondition, "marshal function parameters").WithCause(err)
	}
	return types.ToolSchema{
		Name:        r.FunctionName,
		Description: r.FunctionDescription,
		Parameters:  raw,
	}, nil
}
