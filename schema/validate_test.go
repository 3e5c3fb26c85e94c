package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptcast/types"
)

func mustParse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestValidate_AcceptsConformingValues(t *testing.T) {
	boolDoc, _, err := Translate(types.NewBoolean())
	require.NoError(t, err)
	recipeDoc, _, err := Translate(types.NewObject(
		types.NewField("name", types.NewString()),
		types.NewField("servings", types.NewNumber()),
		types.NewOptionalField("notes", types.NewString()),
	))
	require.NoError(t, err)
	listDoc, _, err := Translate(types.NewArray(types.NewEnum("red", "blue")))
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  *Document
		raw  string
	}{
		{"wrapped boolean", boolDoc, `{"value": true}`},
		{"object", recipeDoc, `{"name": "soup", "servings": 4}`},
		{"object with optional", recipeDoc, `{"name": "soup", "servings": 4, "notes": "hot"}`},
		{"object with unknown key", recipeDoc, `{"name": "soup", "servings": 4, "rating": 5}`},
		{"wrapped enum array", listDoc, `{"value": ["red", "blue", "red"]}`},
		{"wrapped empty array", listDoc, `{"value": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(mustParse(t, tt.raw), tt.doc))
		})
	}
}

func TestValidate_ReportsPathAndExpectedVsActual(t *testing.T) {
	boolDoc, _, err := Translate(types.NewBoolean())
	require.NoError(t, err)
	listDoc, _, err := Translate(types.NewArray(types.NewEnum("red", "blue")))
	require.NoError(t, err)
	recipeDoc, _, err := Translate(types.NewObject(
		types.NewField("name", types.NewString()),
		types.NewField("steps", types.NewArray(types.NewString())),
	))
	require.NoError(t, err)

	tests := []struct {
		name     string
		doc      *Document
		raw      string
		wantPath string
		wantMsg  string
	}{
		{"root not object", boolDoc, `[true]`, "", "expected object, got array"},
		{"missing envelope field", boolDoc, `{}`, "value", "missing required field"},
		{"wrong primitive", boolDoc, `{"value": "yes"}`, "value", "expected boolean, got string"},
		{"null primitive", boolDoc, `{"value": null}`, "value", "expected boolean, got null"},
		{"enum violation", listDoc, `{"value": ["red", "purple"]}`, "value[1]", "not one of the allowed values"},
		{"element type", listDoc, `{"value": ["red", 3]}`, "value[1]", "expected string, got number"},
		{"missing required field", recipeDoc, `{"name": "soup"}`, "steps", "missing required field"},
		{"nested element", recipeDoc, `{"name": "soup", "steps": ["chop", false]}`, "steps[1]", "expected string, got boolean"},
		{"field type", recipeDoc, `{"name": 7, "steps": []}`, "name", "expected string, got number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustParse(t, tt.raw), tt.doc)
			require.Error(t, err)
			assert.True(t, types.IsValidation(err), "got %v", err)

			var e *types.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantPath, e.Path)
			assert.Contains(t, e.Message, tt.wantMsg)
		})
	}
}

func TestValidate_IgnoresArrayBounds(t *testing.T) {
	d := types.NewArray(types.NewString()).WithMinItems(2).WithMaxItems(3)
	doc, _, err := Translate(d)
	require.NoError(t, err)

	// One element is below minItems and five above maxItems; both pass
	// structural validation because bounds are cardinality policy, not
	// schema validation.
	assert.NoError(t, Validate(mustParse(t, `{"value": ["a"]}`), doc))
	assert.NoError(t, Validate(mustParse(t, `{"value": ["a","b","c","d","e"]}`), doc))
}
