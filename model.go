package pragmatic

import (
	"fmt"
	"slices"

	"sourcery.dny.nu/pragmatic/internal/json"
)

// ProjectionOptions are passed through to [Model.Projection] when a document
// is produced.
type ProjectionOptions struct {
	// Only restricts the projection to these fields, if set.
	Only []string
	// Except removes these fields from the projection.
	Except []string
}

// Model is the contract a host type has to fulfil to be compacted.
type Model interface {
	// Projection returns the plain JSON projection of the model: a mapping
	// from field name to a value that is already safe to encode as JSON.
	// [Project] implements this on top of encoding/json.
	Projection(opts ProjectionOptions) (map[string]any, error)

	// FieldValue returns the current value of the named field. This is the
	// live value, not its projection, so nested models, slices and maps keep
	// their Go type.
	FieldValue(name string) any
}

// Contextualizable is a [Model] that knows its own [Schema].
//
// Values of this type nested inside another model are compacted into their
// own document.
type Contextualizable interface {
	Model
	LinkedDataSchema() *Schema
}

// TermLister can be implemented by a [Model] to control which fields are
// considered for the @context.
//
// Without it, every key of the projection is a declared term.
type TermLister interface {
	DeclaredTerms() []string
}

// Project builds a projection for v out of its JSON encoding.
//
// The encoding of v must be a JSON object. Numbers are kept as [json.Number]
// to not lose precision.
func Project(v any, opts ProjectionOptions) (map[string]any, error) {
	plain, err := json.Plain(v)
	if err != nil {
		return nil, fmt.Errorf("%w: projecting %T: %w", ErrPrecondition, v, err)
	}

	obj, ok := plain.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not encode to a JSON object", ErrPrecondition, v)
	}

	if opts.Only != nil {
		for k := range obj {
			if !slices.Contains(opts.Only, k) {
				delete(obj, k)
			}
		}
	}

	for _, k := range opts.Except {
		delete(obj, k)
	}

	return obj, nil
}

// Resource is a map backed [Contextualizable].
//
// It's useful for data that doesn't have a Go type of its own, like decoded
// JSON. Nested resources in Fields are compacted into their own document.
type Resource struct {
	Fields map[string]any
	Schema *Schema
}

var _ Contextualizable = (*Resource)(nil)

// NewResource returns a Resource described by schema.
func NewResource(schema *Schema, fields map[string]any) *Resource {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Resource{
		Fields: fields,
		Schema: schema,
	}
}

// Projection implements [Model].
func (r *Resource) Projection(opts ProjectionOptions) (map[string]any, error) {
	return Project(r.Fields, opts)
}

// FieldValue implements [Model].
func (r *Resource) FieldValue(name string) any {
	return r.Fields[name]
}

// LinkedDataSchema implements [Contextualizable].
func (r *Resource) LinkedDataSchema() *Schema {
	return r.Schema
}

// MarshalJSON encodes the fields of the resource as a JSON object.
func (r *Resource) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte(`{}`), nil
	}
	return json.Marshal(r.Fields)
}
