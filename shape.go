package pragmatic

import (
	"reflect"
)

// Shape is the category a field value falls in during compaction. It
// determines how the value is rendered in the document.
type Shape uint8

const (
	ShapeScalar      Shape = iota // rendered as its projection
	ShapeCompactable              // rendered as its own document
	ShapeSequence                 // rendered element by element
	ShapeMap                      // flattened into "term:key" entries
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeCompactable:
		return "compactable"
	case ShapeSequence:
		return "sequence"
	case ShapeMap:
		return "map"
	default:
		return "unknown"
	}
}

// shapeOf determines the [Shape] of a live field value.
//
// A value is compactable when it is a [Model] with a schema, resolved through
// [Contextualizable] or the catalog. Slices and arrays are sequences, except
// for []byte which encodes to a JSON string. Maps with string keys are maps.
// Nil slices, maps and pointers are scalars, they project to null.
func (c *Compactor) shapeOf(v any) Shape {
	switch v.(type) {
	case nil, string, bool, []byte:
		return ShapeScalar
	case []any:
		if v.([]any) == nil {
			return ShapeScalar
		}
		return ShapeSequence
	case map[string]any:
		if v.(map[string]any) == nil {
			return ShapeScalar
		}
		return ShapeMap
	}

	if isNil(v) {
		return ShapeScalar
	}

	rv := reflect.ValueOf(v)
	if _, _, ok := c.compactable(v); ok {
		return ShapeCompactable
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ShapeScalar
		}
		return ShapeSequence
	case reflect.Array:
		return ShapeSequence
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ShapeMap
		}
	}

	return ShapeScalar
}

// isNil reports whether v is nil or holds a nil pointer, slice or map.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// compactable returns the model and schema for v if v can produce its own
// document.
func (c *Compactor) compactable(v any) (Model, *Schema, bool) {
	if cm, ok := v.(Contextualizable); ok {
		return cm, cm.LinkedDataSchema(), true
	}

	m, ok := v.(Model)
	if !ok {
		return nil, nil, false
	}

	s, ok := c.catalog.Lookup(v)
	if !ok {
		return nil, nil, false
	}

	return m, s, true
}

// elements returns the elements of a sequence value.
func elements(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range rv.Len() {
			res[i] = rv.Index(i).Interface()
		}
		return res
	default:
		return nil
	}
}

// entries returns the key/value pairs of a map value.
func entries(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}

	res := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		res[iter.Key().String()] = iter.Value().Interface()
	}
	return res
}

// elementAt returns the element at index i of a projected sequence.
func elementAt(v any, i int) (any, bool) {
	if s, ok := v.([]any); ok {
		if i < len(s) {
			return s[i], true
		}
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < rv.Len() {
			return rv.Index(i).Interface(), true
		}
	}
	return nil, false
}
