package pragmatic

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"sourcery.dny.nu/pragmatic/internal/json"
)

// Document is a compacted JSON-LD document. It always holds a @context entry.
type Document map[string]any

// Context returns the @context entry of the document.
func (d Document) Context() Context {
	ctx, _ := d[KeywordContext].(Context)
	return ctx
}

// CompactorOption can be used to customise the behaviour of a [Compactor].
type CompactorOption func(*Compactor)

// Compactor produces JSON-LD documents for models.
//
// Your application should only ever need one of them. It holds no state
// between calls and is safe for concurrent use as long as the schemas of the
// models are no longer being changed.
type Compactor struct {
	logger   *slog.Logger
	catalog  *Catalog
	maxDepth int
	metrics  *Metrics
}

// NewCompactor creates a new Compactor.
//
// By default:
//   - Only models implementing [Contextualizable] are compacted into their
//     own document. Register other types with [WithCatalog].
//   - Nested documents are compacted up to [MaxNestingDepth] levels deep.
//     Change it with [WithMaxDepth].
//   - Logger is [slog.DiscardHandler]. Set it with [WithLogger]. The logger is
//     only used to emit warnings.
//   - No metrics are collected. Enable them with [WithMetrics].
func NewCompactor(options ...CompactorOption) *Compactor {
	c := &Compactor{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: MaxNestingDepth,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// WithLogger sets the logger that'll be used to emit warnings during
// compaction.
func WithLogger(l *slog.Logger) CompactorOption {
	return func(c *Compactor) {
		c.logger = l
	}
}

// WithCatalog sets the catalog used to find the schema of models that don't
// implement [Contextualizable].
func WithCatalog(cat *Catalog) CompactorOption {
	return func(c *Compactor) {
		c.catalog = cat
	}
}

// WithMaxDepth sets how many levels of nested documents are compacted before
// giving up with [ErrNestingTooDeep].
func WithMaxDepth(depth int) CompactorOption {
	return func(c *Compactor) {
		c.maxDepth = depth
	}
}

// WithMetrics sets the collectors updated for every compacted document.
func WithMetrics(m *Metrics) CompactorOption {
	return func(c *Compactor) {
		c.metrics = m
	}
}

// walk tracks a single compaction through nested documents.
type walk struct {
	deepest   int
	nested    int
	flattened int
}

// Document compacts m into a JSON-LD document.
//
// Only terms that have a definition in the schema of m end up in the
// document. The value of each term is rendered according to its [Shape]:
//   - Compactable values become their own document, with their own @context.
//   - Sequences are rendered element by element. Compactable elements become
//     their own document, the others use the projection at the same index.
//   - Maps are flattened: each key k of the map of term t becomes an entry
//     "t:k" holding the map's value as-is. No "t" entry is emitted.
//   - Everything else uses its projection.
//
// The @id and @type entries are added when the schema declares them. opts are
// passed to the projection of m, not to nested models. Fields removed by opts
// are not declared terms, so the @context can be smaller than the one
// returned by [Compactor.Context].
func (c *Compactor) Document(m Model, opts ProjectionOptions) (Document, error) {
	w := &walk{}
	doc, err := c.document(w, m, opts, 0)
	c.metrics.observe(w, err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal compacts m and returns the JSON encoding of the document.
func (c *Compactor) Marshal(m Model, opts ProjectionOptions) ([]byte, error) {
	doc, err := c.Document(m, opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Context returns the @context for m, without compacting it.
//
// It uses the full projection of m. A document produced with
// [ProjectionOptions] that remove fields can have a smaller @context.
func (c *Compactor) Context(m Model) (Context, error) {
	schema, err := c.schemaOf(m)
	if err != nil {
		return nil, err
	}

	projection, err := project(m, ProjectionOptions{})
	if err != nil {
		return nil, err
	}

	return schema.definitionsForTerms(declaredTerms(m, projection)), nil
}

// UncontextualizedTerms returns the declared terms of m that have no
// definition in its schema, in declaration order.
func (c *Compactor) UncontextualizedTerms(m Model) ([]string, error) {
	schema, err := c.schemaOf(m)
	if err != nil {
		return nil, err
	}

	projection, err := project(m, ProjectionOptions{})
	if err != nil {
		return nil, err
	}

	terms := declaredTerms(m, projection)
	ctx := schema.definitionsForTerms(terms)

	res := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := ctx[term]; !ok {
			res = append(res, term)
		}
	}
	return res, nil
}

func (c *Compactor) document(w *walk, m Model, opts ProjectionOptions, depth int) (Document, error) {
	if depth > c.maxDepth {
		return nil, fmt.Errorf("%w: exceeded %d levels", ErrNestingTooDeep, c.maxDepth)
	}
	w.deepest = max(w.deepest, depth)

	schema, err := c.schemaOf(m)
	if err != nil {
		return nil, err
	}

	projection, err := project(m, opts)
	if err != nil {
		return nil, err
	}

	// 1)
	ctx := schema.definitionsForTerms(declaredTerms(m, projection))
	terms := ctx.Terms()

	// 2)
	literals := make(map[string]any, len(terms))
	for _, term := range terms {
		literals[term] = projection[term]
	}

	// 3)
	result := make(Document, len(terms)+3)

	// 4)
	if f := schema.IDFactory(); f != nil {
		result[KeywordID] = f(m)
	}

	// 5)
	if t, ok := schema.TypeIRI(); ok {
		result[KeywordType] = t
	}

	// 6)
	for _, term := range terms {
		value := m.FieldValue(term)

		switch c.shapeOf(value) {
		case ShapeCompactable:
			doc, err := c.nested(w, value, depth)
			if err != nil {
				return nil, fmt.Errorf("term %q: %w", term, err)
			}
			result[term] = doc
		case ShapeSequence:
			elems := elements(value)
			list := make([]any, len(elems))
			for i, elem := range elems {
				if c.shapeOf(elem) == ShapeCompactable {
					doc, err := c.nested(w, elem, depth)
					if err != nil {
						return nil, fmt.Errorf("term %q index %d: %w", term, i, err)
					}
					list[i] = doc
					continue
				}

				lit, ok := elementAt(literals[term], i)
				if !ok {
					c.logger.Warn("no projected value for sequence element",
						slog.String("term", term), slog.Int("index", i))
				}
				list[i] = lit
			}
			result[term] = list
		case ShapeMap:
			for k, v := range entries(value) {
				result[term+NamespaceSeparator+k] = v
				w.flattened++
			}
		default:
			result[term] = literals[term]
		}
	}

	// 7)
	result[KeywordContext] = ctx

	// 8)
	return result, nil
}

func (c *Compactor) nested(w *walk, v any, depth int) (Document, error) {
	m, _, _ := c.compactable(v)
	w.nested++
	return c.document(w, m, ProjectionOptions{}, depth+1)
}

// schemaOf returns the schema of a top-level model. Unlike nested values, a
// top-level model without any schema is an error.
func (c *Compactor) schemaOf(m Model) (*Schema, error) {
	if isNil(m) {
		return nil, fmt.Errorf("%w: nil model", ErrPrecondition)
	}

	_, s, ok := c.compactable(m)
	if !ok {
		return nil, fmt.Errorf("%w: no schema for %T", ErrPrecondition, m)
	}
	return s, nil
}

func project(m Model, opts ProjectionOptions) (map[string]any, error) {
	projection, err := m.Projection(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: projection of %T: %w", ErrPrecondition, m, err)
	}
	return projection, nil
}

// declaredTerms returns the terms of m that are considered for the @context.
// The result is never nil, a nil slice would request every registered term.
func declaredTerms(m Model, projection map[string]any) []string {
	var terms []string
	if tl, ok := m.(TermLister); ok {
		terms = tl.DeclaredTerms()
	} else {
		terms = slices.Sorted(maps.Keys(projection))
	}

	if terms == nil {
		return []string{}
	}
	return terms
}

var defaultCompactor = NewCompactor()

// Compact compacts m using a [Compactor] with the default options.
func Compact(m Model, opts ProjectionOptions) (Document, error) {
	return defaultCompactor.Document(m, opts)
}

// ContextFor returns the @context for m using a [Compactor] with the default
// options.
func ContextFor(m Model) (Context, error) {
	return defaultCompactor.Context(m)
}

// UncontextualizedTerms returns the declared terms of m without a definition,
// using a [Compactor] with the default options.
func UncontextualizedTerms(m Model) ([]string, error) {
	return defaultCompactor.UncontextualizedTerms(m)
}
