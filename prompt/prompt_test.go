package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptcast/schema"
	"github.com/BaSui01/promptcast/types"
)

func TestBool(t *testing.T) {
	req, err := Bool("Is the sky blue?")
	require.NoError(t, err)

	assert.Equal(t, "You decide whether the user's statement is true or false. "+
		"Call the answer function with exactly one boolean value.", req.System)
	assert.Equal(t, "Is the sky blue?", req.User)
	assert.Equal(t, "answer", req.FunctionName)
	assert.True(t, req.Wrapped)

	require.NotNil(t, req.Parameters)
	assert.Equal(t, schema.TypeObject, req.Parameters.Type)
	require.Contains(t, req.Parameters.Properties, "value")
	assert.Equal(t, schema.TypeBoolean, req.Parameters.Properties["value"].Type)
	assert.Equal(t, []string{"value"}, req.Parameters.Required)
}

func TestCategorize(t *testing.T) {
	req, err := Categorize("My favorite color is red", []string{"red", "blue", "green"})
	require.NoError(t, err)

	assert.Equal(t, `Classify the user's text into exactly one of the following categories: `+
		`"red", "blue", "green". Answer with the chosen category spelled exactly as listed, `+
		`preserving capitalization. Call the answer function with that single value.`, req.System)
	assert.True(t, req.Wrapped)

	require.Contains(t, req.Parameters.Properties, "value")
	value := req.Parameters.Properties["value"]
	assert.Equal(t, schema.TypeString, value.Type)
	assert.Equal(t, []string{"red", "blue", "green"}, value.Enum)
}

func TestList_SystemText(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		minValues  int
		maxValues  int
		wantSystem string
	}{
		{
			name:      "no restriction default bounds",
			minValues: 1,
			maxValues: 5,
			wantSystem: "Extract the values that match the user's text. " +
				"Provide at least 1 and at most 5 values. " +
				"There is no restriction on the allowed values.",
		},
		{
			name:      "zero minimum permits empty answer",
			minValues: 0,
			maxValues: 3,
			wantSystem: "Extract the values that match the user's text. " +
				"Provide at least 0 and at most 3 values. " +
				"There is no restriction on the allowed values. " +
				"You may answer with no values.",
		},
		{
			name:      "minimum above one demands several",
			allowed:   []string{"AC/DC", "Led Zeppelin"},
			minValues: 2,
			maxValues: 4,
			wantSystem: "Extract the values that match the user's text. " +
				"Provide at least 2 and at most 4 values. " +
				`Allowed values: "AC/DC", "Led Zeppelin". ` +
				"Answer with values spelled exactly as listed. " +
				"You may answer with multiple values.",
		},
		{
			name:      "allowed set without suffix",
			allowed:   []string{"a", "b"},
			minValues: 1,
			maxValues: 2,
			wantSystem: "Extract the values that match the user's text. " +
				"Provide at least 1 and at most 2 values. " +
				`Allowed values: "a", "b". ` +
				"Answer with values spelled exactly as listed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := List("some text", tt.allowed, tt.minValues, tt.maxValues)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSystem, req.System)
		})
	}
}

func TestList_Schema(t *testing.T) {
	req, err := List("name the bands", []string{"AC/DC", "Pink Floyd"}, 1, 3)
	require.NoError(t, err)
	require.True(t, req.Wrapped)

	value := req.Parameters.Properties["value"]
	require.NotNil(t, value)
	assert.Equal(t, schema.TypeArray, value.Type)
	require.NotNil(t, value.MinItems)
	require.NotNil(t, value.MaxItems)
	assert.Equal(t, 1, *value.MinItems)
	assert.Equal(t, 3, *value.MaxItems)
	assert.Equal(t, []string{"AC/DC", "Pink Floyd"}, value.Items.Enum)
}

func TestList_NoAllowedSetAcceptsAnyString(t *testing.T) {
	req, err := List("name some cities", nil, 1, 5)
	require.NoError(t, err)

	value := req.Parameters.Properties["value"]
	require.NotNil(t, value)
	assert.Equal(t, schema.TypeString, value.Items.Type)
	assert.Empty(t, value.Items.Enum)
}

func TestSchema_NoSystemMessage(t *testing.T) {
	d := types.NewObject(
		types.NewField("name", types.NewString()),
		types.NewField("age", types.NewNumber()),
	)
	req, err := Schema("Describe the person", d)
	require.NoError(t, err)

	assert.Empty(t, req.System)
	assert.False(t, req.Wrapped)

	msgs := req.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
}

func TestSchema_WrapsNonObjectRoot(t *testing.T) {
	req, err := Schema("what is 2+2", types.NewNumber())
	require.NoError(t, err)
	assert.True(t, req.Wrapped)
	assert.Equal(t, schema.TypeNumber, req.Parameters.Properties["value"].Type)
}

func TestSchema_InvalidDescriptor(t *testing.T) {
	_, err := Schema("anything", types.NewEnum())
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
}

func TestText(t *testing.T) {
	req := Text("What is the capital of France?")

	assert.Equal(t, "Answer the user's question. Reproduce only the answer itself, "+
		"verbatim, with no conversational filler or explanations.", req.System)
	assert.Nil(t, req.Parameters)
	assert.Empty(t, req.FunctionName)

	msgs := req.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
}

func TestText_ToolFails(t *testing.T) {
	_, err := Text("anything").Tool()
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
}

func TestRequest_Tool(t *testing.T) {
	req, err := Bool("Is water wet?")
	require.NoError(t, err)

	tool, err := req.Tool()
	require.NoError(t, err)
	assert.Equal(t, "answer", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"value": {"type": "boolean"}},
		"required": ["value"]
	}`, string(tool.Parameters))
}

func TestRequest_MessagesOrder(t *testing.T) {
	req, err := Bool("Is the sky blue?")
	require.NoError(t, err)

	msgs := req.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, req.System, msgs[0].Content)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, "Is the sky blue?", msgs[1].Content)
}
