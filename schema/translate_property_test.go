package schema

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/promptcast/types"
)

// drawDescriptor generates a well-formed descriptor with nesting bounded by
// depth.
func drawDescriptor(rt *rapid.T, depth int, label string) *types.Descriptor {
	kinds := []types.Kind{types.KindString, types.KindNumber, types.KindBoolean, types.KindEnum}
	if depth > 0 {
		kinds = append(kinds, types.KindArray, types.KindObject)
	}
	switch rapid.SampledFrom(kinds).Draw(rt, label+"Kind") {
	case types.KindNumber:
		return types.NewNumber()
	case types.KindBoolean:
		return types.NewBoolean()
	case types.KindEnum:
		values := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 4).Draw(rt, label+"Values")
		return types.NewEnum(values...)
	case types.KindArray:
		d := types.NewArray(drawDescriptor(rt, depth-1, label+"Elem"))
		if rapid.Bool().Draw(rt, label+"HasMin") {
			min := rapid.IntRange(0, 3).Draw(rt, label+"Min")
			d.WithMinItems(min)
			if rapid.Bool().Draw(rt, label+"HasMax") {
				d.WithMaxItems(rapid.IntRange(min, min+4).Draw(rt, label+"Max"))
			}
		}
		return d
	case types.KindObject:
		n := rapid.IntRange(0, 3).Draw(rt, label+"NFields")
		fields := make([]types.Field, n)
		for i := 0; i < n; i++ {
			// Index suffix keeps field names unique within the object.
			name := fmt.Sprintf("%s%d", rapid.StringMatching(`[a-z]{2,6}`).Draw(rt, fmt.Sprintf("%sName%d", label, i)), i)
			fields[i] = types.Field{
				Name:     name,
				Type:     drawDescriptor(rt, depth-1, fmt.Sprintf("%sF%d", label, i)),
				Optional: rapid.Bool().Draw(rt, fmt.Sprintf("%sOpt%d", label, i)),
			}
		}
		return types.NewObject(fields...)
	default:
		return types.NewString()
	}
}

func TestTranslate_PropertyIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := drawDescriptor(rt, 3, "d")

		doc1, wrapped1, err := Translate(d)
		require.NoError(t, err)
		doc2, wrapped2, err := Translate(d)
		require.NoError(t, err)

		if wrapped1 != wrapped2 {
			rt.Fatalf("wrap decision changed between calls: %v vs %v", wrapped1, wrapped2)
		}
		if !reflect.DeepEqual(doc1, doc2) {
			rt.Fatalf("documents differ between calls:\n%+v\n%+v", doc1, doc2)
		}

		json1, err := doc1.ToJSON()
		require.NoError(t, err)
		json2, err := doc2.ToJSON()
		require.NoError(t, err)
		if string(json1) != string(json2) {
			rt.Fatalf("serialized documents differ:\n%s\n%s", json1, json2)
		}
	})
}

func TestTranslate_PropertyWrapIffNonObject(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := drawDescriptor(rt, 3, "d")

		doc, wrapped, err := Translate(d)
		require.NoError(t, err)

		if want := d.Kind != types.KindObject; wrapped != want {
			rt.Fatalf("kind %s: wrapped = %v, want %v", d.Kind, wrapped, want)
		}
		if wrapped {
			if doc.Type != TypeObject {
				rt.Fatalf("wrapper must be an object, got %s", doc.Type)
			}
			if len(doc.Required) != 1 || doc.Required[0] != "value" {
				rt.Fatalf("wrapper must require exactly the value field, got %v", doc.Required)
			}
		}
	})
}

func TestTranslate_PropertyLeavesDescriptorUntouched(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := drawDescriptor(rt, 3, "d")
		before := d.Clone()

		_, _, err := Translate(d)
		require.NoError(t, err)

		if !reflect.DeepEqual(before, d) {
			rt.Fatalf("descriptor mutated by translation:\n%+v\n%+v", before, d)
		}
	})
}
