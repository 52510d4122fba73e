package pragmatic

import (
	"iter"
	"maps"
	"slices"
)

// Context maps a term to the rendered form of its [TermDefinition].
//
// It is the value of the @context entry of a compacted document.
type Context map[string]any

// Terms returns the terms in the context, sorted.
func (c Context) Terms() []string {
	return slices.Sorted(maps.Keys(c))
}

// TermRegistry stores the term definitions declared for a model type.
//
// [DefaultRegistry] is used unless a different strategy is installed with
// [Builder.ContextualizeWith].
type TermRegistry interface {
	// AddTerm stores the definition for name, replacing any earlier one.
	AddTerm(name string, opts TermOptions)

	// DefinitionsForTerms returns the rendered definitions of the requested
	// terms. Terms without a definition are omitted. A nil slice requests
	// every known term.
	DefinitionsForTerms(names []string) Context
}

// RegistryFactory creates the [TermRegistry] for a model type.
type RegistryFactory func() TermRegistry

// DefaultRegistry is the map backed [TermRegistry].
//
// It is not safe for concurrent mutation. Declare all terms before the
// registry is used for compaction.
type DefaultRegistry struct {
	defs map[string]TermDefinition
}

var _ TermRegistry = (*DefaultRegistry)(nil)

// NewDefaultRegistry returns an empty [DefaultRegistry].
func NewDefaultRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		defs: make(map[string]TermDefinition),
	}
}

// AddTerm implements [TermRegistry].
func (r *DefaultRegistry) AddTerm(name string, opts TermOptions) {
	if r.defs == nil {
		r.defs = make(map[string]TermDefinition)
	}
	r.defs[name] = NewTermDefinition(opts)
}

// DefinitionsForTerms implements [TermRegistry].
func (r *DefaultRegistry) DefinitionsForTerms(names []string) Context {
	if names == nil {
		result := make(Context, len(r.defs))
		for name, def := range r.defs {
			result[name] = def.Render()
		}
		return result
	}

	result := make(Context, min(len(names), len(r.defs)))
	for _, name := range names {
		if def, ok := r.defs[name]; ok {
			result[name] = def.Render()
		}
	}
	return result
}

// Definition returns the definition stored for name.
func (r *DefaultRegistry) Definition(name string) (TermDefinition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Definitions returns an iterator over the stored term definitions.
func (r *DefaultRegistry) Definitions() iter.Seq2[string, TermDefinition] {
	return func(yield func(string, TermDefinition) bool) {
		for k, v := range r.defs {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Terms returns the declared term names, sorted.
func (r *DefaultRegistry) Terms() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

func (r *DefaultRegistry) clone() *DefaultRegistry {
	return &DefaultRegistry{
		defs: maps.Clone(r.defs),
	}
}
