package promptcast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptcast/testutil/mocks"
	"github.com/BaSui01/promptcast/types"
)

func TestList(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["AC/DC","Led Zeppelin"]}`)
	c := newTestCaster(t, mock)

	got, err := c.List(context.Background(), "Name the bands in the text", []string{"AC/DC", "Led Zeppelin", "Pink Floyd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AC/DC", "Led Zeppelin"}, got)
}

func TestList_TruncatesToMaxValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["AC/DC","Guns N' Roses","Led Zeppelin","Pink Floyd"]}`)
	c := newTestCaster(t, mock)

	got, err := c.List(context.Background(), "Name all four bands",
		[]string{"AC/DC", "Guns N' Roses", "Led Zeppelin", "Pink Floyd"},
		WithMaxValues(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"AC/DC", "Guns N' Roses", "Led Zeppelin"}, got,
		"truncation keeps the earliest answers")
}

func TestList_TooFewValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["AC/DC"]}`)
	c := newTestCaster(t, mock)

	_, err := c.List(context.Background(), "Name the bands", []string{"AC/DC", "Led Zeppelin"},
		WithMinValues(2), WithMaxValues(3))
	require.Error(t, err)
	assert.Equal(t, types.ErrCardinality, types.Code(err))
}

func TestList_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		opts []CallOption
	}{
		{name: "min equals max", opts: []CallOption{WithMinValues(3), WithMaxValues(3)}},
		{name: "min above max", opts: []CallOption{WithMinValues(5), WithMaxValues(2)}},
		{name: "negative min", opts: []CallOption{WithMinValues(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := mocks.NewAnswerProvider(`{"value":["a"]}`)
			c := newTestCaster(t, mock)

			_, err := c.List(context.Background(), "some text", nil, tt.opts...)
			require.Error(t, err)
			assert.Equal(t, types.ErrPrecondition, types.Code(err))
			assert.Zero(t, mock.GetCallCount(), "preconditions must fail before any provider call")
		})
	}
}

func TestList_EmptyPrompt(t *testing.T) {
	t.Run("zero minimum returns empty slice", func(t *testing.T) {
		mock := mocks.NewAnswerProvider(`{"value":["a"]}`)
		c := newTestCaster(t, mock)

		got, err := c.List(context.Background(), "   ", nil, WithMinValues(0))
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
		assert.Zero(t, mock.GetCallCount())
	})

	t.Run("positive minimum fails with cardinality error", func(t *testing.T) {
		mock := mocks.NewAnswerProvider(`{"value":["a"]}`)
		c := newTestCaster(t, mock)

		_, err := c.List(context.Background(), "", nil)
		require.Error(t, err)
		assert.Equal(t, types.ErrCardinality, types.Code(err))
		assert.Zero(t, mock.GetCallCount())
	})
}

func TestList_UnrestrictedValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["anything","goes"]}`)
	c := newTestCaster(t, mock)

	got, err := c.List(context.Background(), "Name some words", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"anything", "goes"}, got)

	req := mock.GetLastCall().Request
	assert.Contains(t, req.Messages[0].Content, "no restriction")
}

func TestList_AnswerOutsideAllowedValues(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["Nirvana"]}`)
	c := newTestCaster(t, mock)

	_, err := c.List(context.Background(), "Name the bands", []string{"AC/DC", "Led Zeppelin"})
	require.Error(t, err)
	assert.Equal(t, types.ErrValidation, types.Code(err))
}

func TestList_DefaultBounds(t *testing.T) {
	mock := mocks.NewAnswerProvider(`{"value":["a","b","c","d","e","f"]}`)
	c := newTestCaster(t, mock)

	got, err := c.List(context.Background(), "Name some letters", nil)
	require.NoError(t, err)
	assert.Len(t, got, 5, "default maximum is five values")
}
