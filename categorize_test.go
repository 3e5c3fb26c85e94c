package promptcast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptcast/testutil/mocks"
	"github.com/BaSui01/promptcast/types"
)

func TestCategorize(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"red"}`)
	c := newTestCaster(t, mock)

	got, err := c.Categorize(context.Background(), "My favorite color is red", []string{"red", "blue", "green"})
	require.NoError(t, err)
	assert.Equal(t, "red", got)
}

func TestCategorize_PreservesExactSpelling(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"AC/DC"}`)
	c := newTestCaster(t, mock)

	got, err := c.Categorize(context.Background(), "Thunderstruck is playing", []string{"AC/DC", "Led Zeppelin"})
	require.NoError(t, err)
	assert.Equal(t, "AC/DC", got)
}

func TestCategorize_EmptyPrompt(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"red"}`)
	c := newTestCaster(t, mock)

	_, err := c.Categorize(context.Background(), "  ", []string{"red", "blue"})
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
	assert.Zero(t, mock.GetCallCount())
}

func TestCategorize_EmptyAllowedValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"red"}`)
	c := newTestCaster(t, mock)

	_, err := c.Categorize(context.Background(), "some text", nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrPrecondition, types.Code(err))
	assert.Zero(t, mock.GetCallCount())
}

func TestCategorize_AnswerOutsideAllowedValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"purple"}`)
	c := newTestCaster(t, mock)

	_, err := c.Categorize(context.Background(), "My favorite color is purple", []string{"red", "blue"})
	require.Error(t, err)
	assert.Equal(t, types.ErrValidation, types.Code(err))
}

func TestCategorize_SystemMessageEnumeratesValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":"red"}`)
	c := newTestCaster(t, mock)

	_, err := c.Categorize(context.Background(), "it is red", []string{"red", "blue"})
	require.NoError(t, err)

	req := mock.GetLastCall().Request
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content, `"red", "blue"`)
	assert.Contains(t, req.Messages[0].Content, "preserving capitalization")
}
