package pragmatic

import (
	"fmt"

	"sourcery.dny.nu/pragmatic/internal/json"
)

// TermOptions are the parameters of a term declaration.
//
// A nil field is absent. Any other value is coerced to its string form when
// the [TermDefinition] is constructed: strings are used as-is, a
// [fmt.Stringer] through its String method and anything else through
// [fmt.Sprint].
type TermOptions struct {
	As   any // @id / KeywordID
	Type any // @type / KeywordType
}

// optional differentiates between a value that was set to the empty string
// and one that was never set.
type optional struct {
	Set   bool
	Value string
}

func (o optional) Get() (string, bool) {
	return o.Value, o.Set
}

// coerce turns a declaration parameter into its string form.
func coerce(v any) optional {
	switch val := v.(type) {
	case nil:
		return optional{}
	case string:
		return optional{Set: true, Value: val}
	case fmt.Stringer:
		return optional{Set: true, Value: val.String()}
	default:
		return optional{Set: true, Value: fmt.Sprint(val)}
	}
}

// TermDefinition is the vocabulary mapping declared for a single term.
//
// It is immutable once created with [NewTermDefinition].
type TermDefinition struct {
	iri      optional
	datatype optional
}

// NewTermDefinition creates a [TermDefinition] from the declaration
// parameters.
//
// Both parameters may be absent, resulting in a definition that renders as
// the empty JSON object.
func NewTermDefinition(opts TermOptions) TermDefinition {
	return TermDefinition{
		iri:      coerce(opts.As),
		datatype: coerce(opts.Type),
	}
}

// IRI returns the IRI the term maps to, and whether one was declared.
func (t TermDefinition) IRI() (string, bool) {
	return t.iri.Get()
}

// Type returns the datatype of the term's value, and whether one was
// declared.
func (t TermDefinition) Type() (string, bool) {
	return t.datatype.Get()
}

// IsZero returns if neither an IRI nor a type was declared.
func (t TermDefinition) IsZero() bool {
	return !t.iri.Set && !t.datatype.Set
}

// Render returns the form this definition takes inside a @context.
//
// A definition with only an IRI renders as the bare IRI string. Otherwise
// it's an object holding @id and @type as far as they were declared.
func (t TermDefinition) Render() any {
	if t.iri.Set && !t.datatype.Set {
		return t.iri.Value
	}

	result := make(map[string]any, 2)
	if t.iri.Set {
		result[KeywordID] = t.iri.Value
	}
	if t.datatype.Set {
		result[KeywordType] = t.datatype.Value
	}
	return result
}

// MarshalJSON encodes the rendered form of the definition.
func (t TermDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Render())
}
