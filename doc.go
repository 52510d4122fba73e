// Package pragmatic lets your models describe themselves as JSON-LD.
//
// Each model type declares, per field, the IRI the field maps to and
// optionally the type of its value. Declarations are made on a [Builder],
// usually once at program start-up, and result in an immutable [Schema]:
//
//	b := pragmatic.NewBuilder()
//	b.Contextualize("name", pragmatic.TermOptions{As: "http://schema.org/name"})
//	b.TypeIRI("http://schema.org/Person")
//	schema := b.Build()
//
// A model exposes its schema by implementing [Contextualizable], or by being
// registered in a [Catalog]. It also has to provide a plain JSON projection of
// itself and access to its live field values, see [Model]. [Project] and
// [Resource] help with both.
//
// A [Compactor] turns a model into a compacted JSON-LD [Document]: the @context
// holds the definitions of the model's terms, @id and @type are added when
// declared, and every term with a definition is rendered according to the
// [Shape] of its value. Fields without a definition are left out, they can be
// listed with [Compactor.UncontextualizedTerms].
//
// # Shapes
//
// Nested [Contextualizable] values become a document of their own, including
// their own @context. Slices are rendered element by element, mixing nested
// documents with the projection of the other elements. A map valued term t
// doesn't appear in the document at all. Instead each key k of the map becomes
// the entry "t:k".
//
// # Constraints
//
// This is not a JSON-LD processor. Documents are not validated, remote
// contexts aren't loaded and no expansion or flattening takes place. Use a
// full processor on the output if you need any of that.
//
// Schemas should not be changed once compaction starts. Compaction doesn't
// detect cycles in the object graph but gives up with [ErrNestingTooDeep]
// after [MaxNestingDepth] levels, see [WithMaxDepth].
package pragmatic
