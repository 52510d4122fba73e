package pragmatic

import (
	"fmt"
	"log/slog"

	"sourcery.dny.nu/pragmatic/internal/iri"
)

// IDFactory computes the @id of a model instance.
type IDFactory func(Model) string

// Schema is the JSON-LD configuration of a model type: its term registry,
// its @type and how to compute the @id of an instance.
//
// Create one with a [Builder]. A Schema is not modified after
// [Builder.Build] returned it and is safe for concurrent use, as long as a
// custom [TermRegistry] is too.
type Schema struct {
	registry  TermRegistry
	typeIRI   optional
	idFactory IDFactory
}

// Registry returns the term registry. It is nil if no terms were declared
// and no strategy was installed.
func (s *Schema) Registry() TermRegistry {
	if s == nil {
		return nil
	}
	return s.registry
}

// TypeIRI returns the @type emitted for instances, and whether one was
// declared.
func (s *Schema) TypeIRI() (string, bool) {
	if s == nil {
		return "", false
	}
	return s.typeIRI.Get()
}

// IDFactory returns the @id factory, or nil.
func (s *Schema) IDFactory() IDFactory {
	if s == nil {
		return nil
	}
	return s.idFactory
}

// definitionsForTerms only returns the definitions of names. Unlike
// [TermRegistry.DefinitionsForTerms], nil doesn't request every term.
func (s *Schema) definitionsForTerms(names []string) Context {
	if s == nil || s.registry == nil || len(names) == 0 {
		return Context{}
	}

	ctx := s.registry.DefinitionsForTerms(names)
	if ctx == nil {
		return Context{}
	}
	return ctx
}

// BuilderOption can be used to customise the behaviour of a [Builder].
type BuilderOption func(*Builder)

// WithBuilderLogger sets the logger used to emit warnings about suspicious
// declarations.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// Builder collects the declarations of a model type.
//
// Declarations are typically made once, at program start-up. A Builder is not
// safe for concurrent use.
type Builder struct {
	registry  TermRegistry
	typeIRI   optional
	idFactory IDFactory
	logger    *slog.Logger
}

// NewBuilder returns a Builder without any declarations.
//
// By default warnings are discarded. Set a logger with [WithBuilderLogger].
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// ContextualizeWith installs the registry created by factory as the term
// registry for this type. It replaces any registry that was bound before,
// including one created by an earlier call to [Builder.Contextualize].
func (b *Builder) ContextualizeWith(factory RegistryFactory) {
	if factory == nil {
		b.registry = nil
		return
	}
	b.registry = factory()
}

// Contextualize declares the term name.
//
// The first declaration creates a [DefaultRegistry]. It returns an error
// wrapping [ErrConfiguration] when a different registry was installed with
// [Builder.ContextualizeWith], in which case nothing is declared.
func (b *Builder) Contextualize(name string, opts TermOptions) error {
	if err := b.setupDefaultRegistry(); err != nil {
		return fmt.Errorf("contextualize %q: %w", name, err)
	}

	if isKeyword(name) || looksLikeKeyword(name) {
		b.logger.Warn("term looks like a JSON-LD keyword", slog.String("term", name))
	}

	def := NewTermDefinition(opts)
	if u, ok := def.IRI(); ok && !iri.IsAbsolute(u) && !isKeyword(u) {
		b.logger.Warn("term does not map to an absolute IRI",
			slog.String("term", name), slog.String("iri", u))
	}

	b.registry.AddTerm(name, opts)
	return nil
}

func (b *Builder) setupDefaultRegistry() error {
	if b.registry == nil {
		b.registry = NewDefaultRegistry()
		return nil
	}

	if _, ok := b.registry.(*DefaultRegistry); !ok {
		return ErrConfiguration
	}

	return nil
}

// TypeIRI sets the @type of every document produced for this type. A nil
// value removes it, anything else is coerced to a string the same way as
// [TermOptions].
func (b *Builder) TypeIRI(v any) {
	b.typeIRI = coerce(v)
}

// IDFactory sets the function computing the @id of an instance. A nil
// function removes it.
func (b *Builder) IDFactory(fn IDFactory) {
	b.idFactory = fn
}

// Build returns the [Schema] holding the declarations made so far.
//
// A [DefaultRegistry] is copied, so declarations made on the Builder
// afterwards don't affect the returned Schema. A custom registry is shared.
func (b *Builder) Build() *Schema {
	reg := b.registry
	if def, ok := reg.(*DefaultRegistry); ok {
		reg = def.clone()
	}

	return &Schema{
		registry:  reg,
		typeIRI:   b.typeIRI,
		idFactory: b.idFactory,
	}
}
