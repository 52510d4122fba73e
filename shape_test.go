package pragmatic

import (
	"testing"

	"sourcery.dny.nu/pragmatic/internal/json"
)

type dish struct{}

func (dish) Projection(ProjectionOptions) (map[string]any, error) { return map[string]any{}, nil }
func (dish) FieldValue(string) any { return nil }

func TestShapeOf(t *testing.T) {
	cat := NewCatalog()
	Bind[dish](cat, NewBuilder().Build())

	c := NewCompactor(WithCatalog(cat))

	var nilResource *Resource
	var nilSlice []string
	var nilMap map[string]any

	tests := []struct {
		name  string
		value any
		want  Shape
	}{
		{name: "nil", value: nil, want: ShapeScalar},
		{name: "string", value: "crispy", want: ShapeScalar},
		{name: "int", value: 3, want: ShapeScalar},
		{name: "bool", value: true, want: ShapeScalar},
		{name: "bytes", value: []byte("crispy"), want: ShapeScalar},
		{name: "raw message", value: json.RawMessage(`"crispy"`), want: ShapeScalar},
		{name: "number", value: json.Number("3"), want: ShapeScalar},
		{name: "struct", value: struct{ A int }{A: 1}, want: ShapeScalar},
		{name: "nil resource", value: nilResource, want: ShapeScalar},
		{name: "nil slice", value: nilSlice, want: ShapeScalar},
		{name: "nil map", value: nilMap, want: ShapeScalar},
		{name: "int keyed map", value: map[int]string{1: "a"}, want: ShapeScalar},
		{name: "resource", value: &Resource{}, want: ShapeCompactable},
		{name: "catalog model", value: dish{}, want: ShapeCompactable},
		{name: "any slice", value: []any{"a"}, want: ShapeSequence},
		{name: "string slice", value: []string{"a"}, want: ShapeSequence},
		{name: "array", value: [2]int{1, 2}, want: ShapeSequence},
		{name: "empty slice", value: []any{}, want: ShapeSequence},
		{name: "any map", value: map[string]any{"a": 1}, want: ShapeMap},
		{name: "typed map", value: map[string]int{"a": 1}, want: ShapeMap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.shapeOf(tc.value); got != tc.want {
				t.Errorf("expected shape %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestShapeOfWithoutCatalog(t *testing.T) {
	if got := NewCompactor().shapeOf(dish{}); got != ShapeScalar {
		t.Errorf("expected shape %s, got: %s", ShapeScalar, got)
	}
}

func TestElementAt(t *testing.T) {
	if v, ok := elementAt([]any{"a", "b"}, 1); !ok || v != "b" {
		t.Errorf("expected b, got: %v", v)
	}
	if v, ok := elementAt([]string{"a", "b"}, 0); !ok || v != "a" {
		t.Errorf("expected a, got: %v", v)
	}
	if _, ok := elementAt([]any{"a"}, 3); ok {
		t.Error("expected out of range index to be missing")
	}
	if _, ok := elementAt("not a list", 0); ok {
		t.Error("expected non-list projection to be missing")
	}
}
