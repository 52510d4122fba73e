package pragmatic_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	pc "sourcery.dny.nu/pragmatic"
)

// recordingRegistry is a custom strategy that remembers what was declared.
type recordingRegistry struct {
	added []string
}

func (r *recordingRegistry) AddTerm(name string, _ pc.TermOptions) {
	r.added = append(r.added, name)
}

func (r *recordingRegistry) DefinitionsForTerms(names []string) pc.Context {
	res := pc.Context{}
	for _, name := range names {
		res[name] = "urn:recorded:" + name
	}
	return res
}

func TestBuilderDeclaresOnDefaultRegistry(t *testing.T) {
	b := pc.NewBuilder()
	if err := b.Contextualize("bacon", pc.TermOptions{As: "http://bacon.yum"}); err != nil {
		t.Fatalf("expected no error, got: %s", err)
	}
	if err := b.Contextualize("ham", pc.TermOptions{As: "http://ham.yum"}); err != nil {
		t.Fatalf("expected no error, got: %s", err)
	}

	s := b.Build()
	reg, ok := s.Registry().(*pc.DefaultRegistry)
	if !ok {
		t.Fatalf("expected a default registry, got: %T", s.Registry())
	}

	if diff := cmp.Diff([]string{"bacon", "ham"}, reg.Terms()); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderContextualizeAfterCustomStrategy(t *testing.T) {
	custom := &recordingRegistry{}

	b := pc.NewBuilder()
	b.ContextualizeWith(func() pc.TermRegistry { return custom })

	err := b.Contextualize("bacon", pc.TermOptions{As: "http://bacon.yum"})
	if !errors.Is(err, pc.ErrConfiguration) {
		t.Fatalf("expected: %s, got: %v", pc.ErrConfiguration, err)
	}

	if len(custom.added) != 0 {
		t.Errorf("expected nothing to be declared on the custom registry, got: %v", custom.added)
	}

	if b.Build().Registry() != custom {
		t.Error("expected the custom registry to remain bound")
	}
}

func TestBuilderCustomStrategyAfterDeclarations(t *testing.T) {
	custom := &recordingRegistry{}

	b := pc.NewBuilder()
	if err := b.Contextualize("bacon", pc.TermOptions{As: "http://bacon.yum"}); err != nil {
		t.Fatalf("expected no error, got: %s", err)
	}

	b.ContextualizeWith(func() pc.TermRegistry { return custom })
	b.ContextualizeWith(func() pc.TermRegistry { return custom })

	s := b.Build()
	if s.Registry() != custom {
		t.Fatalf("expected the custom registry to be bound, got: %T", s.Registry())
	}
}

func TestBuilderBuildIsSnapshot(t *testing.T) {
	b := pc.NewBuilder()
	if err := b.Contextualize("bacon", pc.TermOptions{As: "http://bacon.yum"}); err != nil {
		t.Fatal(err.Error())
	}
	b.TypeIRI("Food")

	s := b.Build()

	if err := b.Contextualize("ham", pc.TermOptions{As: "http://ham.yum"}); err != nil {
		t.Fatal(err.Error())
	}
	b.TypeIRI(nil)

	got := s.Registry().DefinitionsForTerms(nil)
	if diff := cmp.Diff(pc.Context{"bacon": "http://bacon.yum"}, got); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}

	if typ, ok := s.TypeIRI(); !ok || typ != "Food" {
		t.Errorf("expected type Food, got: %q (set: %t)", typ, ok)
	}
}

func TestBuilderTypeIRI(t *testing.T) {
	b := pc.NewBuilder()

	b.TypeIRI(food("ham"))
	if typ, _ := b.Build().TypeIRI(); typ != "http://food.yum/ham" {
		t.Errorf("expected coerced type, got: %s", typ)
	}

	b.TypeIRI(nil)
	if _, ok := b.Build().TypeIRI(); ok {
		t.Error("expected type to be cleared")
	}
}

func TestBuilderIDFactory(t *testing.T) {
	b := pc.NewBuilder()
	b.IDFactory(func(pc.Model) string { return "http://bacon" })

	if b.Build().IDFactory() == nil {
		t.Fatal("expected an id factory")
	}

	b.IDFactory(nil)
	if b.Build().IDFactory() != nil {
		t.Fatal("expected id factory to be cleared")
	}
}

func TestBuilderWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	b := pc.NewBuilder(pc.WithBuilderLogger(logger))

	tests := []struct {
		term string
		opts pc.TermOptions
		warn string
	}{
		{term: "@bacon", opts: pc.TermOptions{As: "http://bacon.yum"}, warn: "term looks like a JSON-LD keyword"},
		{term: "ham", opts: pc.TermOptions{As: "ham"}, warn: "term does not map to an absolute IRI"},
	}

	for _, tc := range tests {
		buf.Reset()
		if err := b.Contextualize(tc.term, tc.opts); err != nil {
			t.Fatalf("expected warnings only, got: %s", err)
		}
		if !strings.Contains(buf.String(), tc.warn) {
			t.Errorf("expected warning %q for %s, got: %s", tc.warn, tc.term, buf.String())
		}
	}

	buf.Reset()
	if err := b.Contextualize("eggs", pc.TermOptions{As: "http://eggs.yum"}); err != nil {
		t.Fatal(err.Error())
	}
	if buf.Len() != 0 {
		t.Errorf("expected no warnings, got: %s", buf.String())
	}

	if diff := cmp.Diff([]string{"@bacon", "eggs", "ham"}, b.Build().Registry().(*pc.DefaultRegistry).Terms()); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestNilSchema(t *testing.T) {
	var s *pc.Schema
	if s.Registry() != nil {
		t.Error("expected no registry")
	}
	if _, ok := s.TypeIRI(); ok {
		t.Error("expected no type")
	}
	if s.IDFactory() != nil {
		t.Error("expected no id factory")
	}
}
