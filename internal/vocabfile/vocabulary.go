package vocabfile

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"sourcery.dny.nu/pragmatic"
	"sourcery.dny.nu/pragmatic/internal/iri"
)

var placeholder = regexp.MustCompile(`\{([^{}]+)\}`)

// Vocabulary holds the schemas declared by a [File].
type Vocabulary struct {
	specs   map[string]TypeSpec
	schemas map[string]*pragmatic.Schema
}

// Compile declares every type of the file on a [pragmatic.Builder]. Warnings
// about suspicious declarations go to logger.
func (f *File) Compile(logger *slog.Logger) (*Vocabulary, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := &Vocabulary{
		specs:   f.Types,
		schemas: make(map[string]*pragmatic.Schema, len(f.Types)),
	}

	for _, name := range slices.Sorted(maps.Keys(f.Types)) {
		spec := f.Types[name]

		for field, nested := range spec.Nested {
			if _, ok := f.Types[nested]; !ok {
				return nil, fmt.Errorf("%w: type %s: field %s refers to unknown type %s",
					ErrInvalidVocabulary, name, field, nested)
			}
		}

		schema, err := compileType(spec, logger.With(slog.String("type", name)))
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		v.schemas[name] = schema
	}

	return v, nil
}

func compileType(spec TypeSpec, logger *slog.Logger) (*pragmatic.Schema, error) {
	b := pragmatic.NewBuilder(pragmatic.WithBuilderLogger(logger))

	for _, term := range slices.Sorted(maps.Keys(spec.Terms)) {
		def := spec.Terms[term]

		var opts pragmatic.TermOptions
		if def.As != nil {
			opts.As = *def.As
		}
		if def.Type != nil {
			opts.Type = *def.Type
		}

		if err := b.Contextualize(term, opts); err != nil {
			return nil, err
		}
	}

	if spec.Type != "" {
		b.TypeIRI(spec.Type)
	}

	if spec.ID != nil {
		factory, err := idFactory(*spec.ID)
		if err != nil {
			return nil, err
		}
		b.IDFactory(factory)
	}

	return b.Build(), nil
}

func idFactory(spec IDSpec) (pragmatic.IDFactory, error) {
	switch {
	case spec.Template != "" && spec.UUID != nil:
		return nil, fmt.Errorf("%w: id has both a template and a uuid", ErrInvalidVocabulary)
	case spec.Template != "":
		return templateFactory(spec.Base, spec.Template), nil
	case spec.UUID != nil:
		return uuidFactory(spec.Base, *spec.UUID)
	default:
		return nil, fmt.Errorf("%w: id needs a template or a uuid", ErrInvalidVocabulary)
	}
}

func templateFactory(base, template string) pragmatic.IDFactory {
	return func(m pragmatic.Model) string {
		id := placeholder.ReplaceAllStringFunc(template, func(match string) string {
			field := match[1 : len(match)-1]
			return fmt.Sprint(m.FieldValue(field))
		})
		return resolve(base, id)
	}
}

func uuidFactory(base string, spec UUIDSpec) (pragmatic.IDFactory, error) {
	if spec.Field == "" {
		return nil, fmt.Errorf("%w: uuid id needs a field", ErrInvalidVocabulary)
	}

	ns, err := namespace(spec.Namespace)
	if err != nil {
		return nil, err
	}

	return func(m pragmatic.Model) string {
		id := uuid.NewSHA1(ns, []byte(fmt.Sprint(m.FieldValue(spec.Field))))
		if base == "" {
			return id.URN()
		}
		return resolve(base, id.String())
	}, nil
}

func namespace(s string) (uuid.UUID, error) {
	switch strings.ToLower(s) {
	case "dns":
		return uuid.NameSpaceDNS, nil
	case "url":
		return uuid.NameSpaceURL, nil
	case "oid":
		return uuid.NameSpaceOID, nil
	case "x500":
		return uuid.NameSpaceX500, nil
	}

	ns, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: uuid namespace %q: %w", ErrInvalidVocabulary, s, err)
	}
	return ns, nil
}

// resolve falls back to the unresolved id when it can't be resolved, the
// document will carry it as-is.
func resolve(base, id string) string {
	res, err := iri.Resolve(base, id)
	if err != nil {
		return id
	}
	return res
}

// Types returns the names of the declared types, sorted.
func (v *Vocabulary) Types() []string {
	return slices.Sorted(maps.Keys(v.schemas))
}

// Schema returns the schema of the named type.
func (v *Vocabulary) Schema(name string) (*pragmatic.Schema, bool) {
	s, ok := v.schemas[name]
	return s, ok
}

// Spec returns the declarations of the named type.
func (v *Vocabulary) Spec(name string) (TypeSpec, bool) {
	s, ok := v.specs[name]
	return s, ok
}

// Resource wraps decoded JSON fields into a [pragmatic.Resource] of the named
// type. Fields listed in the type's nested section are turned into resources
// of their own, also when they hold a list of objects.
func (v *Vocabulary) Resource(name string, fields map[string]any) (*pragmatic.Resource, error) {
	schema, ok := v.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidVocabulary, name)
	}

	spec := v.specs[name]
	res := make(map[string]any, len(fields))
	for field, value := range fields {
		nested, ok := spec.Nested[field]
		if !ok {
			res[field] = value
			continue
		}

		converted, err := v.nested(nested, value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		res[field] = converted
	}

	return pragmatic.NewResource(schema, res), nil
}

func (v *Vocabulary) nested(name string, value any) (any, error) {
	switch val := value.(type) {
	case map[string]any:
		return v.Resource(name, val)
	case []any:
		list := make([]any, len(val))
		for i, elem := range val {
			converted, err := v.nested(name, elem)
			if err != nil {
				return nil, err
			}
			list[i] = converted
		}
		return list, nil
	default:
		return value, nil
	}
}
