package pragmatic_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	pc "sourcery.dny.nu/pragmatic"
)

func TestDefaultRegistry(t *testing.T) {
	reg := pc.NewDefaultRegistry()
	reg.AddTerm("bacon", pc.TermOptions{As: "http://bacon.yum"})
	reg.AddTerm("ham", pc.TermOptions{As: "http://ham.yum", Type: "blackforest"})

	t.Run("requested terms", func(t *testing.T) {
		want := pc.Context{
			"bacon": "http://bacon.yum",
			"ham":   map[string]any{"@id": "http://ham.yum", "@type": "blackforest"},
		}
		if diff := cmp.Diff(want, reg.DefinitionsForTerms([]string{"bacon", "ham"})); diff != "" {
			t.Errorf("definitions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("all terms", func(t *testing.T) {
		got := reg.DefinitionsForTerms(nil)
		if diff := cmp.Diff([]string{"bacon", "ham"}, got.Terms()); diff != "" {
			t.Errorf("terms mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no terms", func(t *testing.T) {
		got := reg.DefinitionsForTerms([]string{})
		if len(got) != 0 {
			t.Errorf("expected no definitions, got: %v", got)
		}
	})

	t.Run("unknown terms are omitted", func(t *testing.T) {
		orders := [][]string{
			{"eggs", "bacon"},
			{"bacon", "eggs"},
			{"eggs", "toast", "bacon", "eggs"},
		}
		for _, names := range orders {
			got := reg.DefinitionsForTerms(names)
			if diff := cmp.Diff(pc.Context{"bacon": "http://bacon.yum"}, got); diff != "" {
				t.Errorf("definitions for %v mismatch (-want +got):\n%s", names, diff)
			}
		}
	})

	t.Run("redeclaring replaces", func(t *testing.T) {
		reg := pc.NewDefaultRegistry()
		reg.AddTerm("bacon", pc.TermOptions{As: "http://bacon.yum"})
		reg.AddTerm("bacon", pc.TermOptions{As: "http://crispy.yum", Type: "strip"})

		def, ok := reg.Definition("bacon")
		if !ok {
			t.Fatal("expected bacon to be defined")
		}
		if iri, _ := def.IRI(); iri != "http://crispy.yum" {
			t.Errorf("expected redeclared IRI, got: %s", iri)
		}
		if diff := cmp.Diff([]string{"bacon"}, reg.Terms()); diff != "" {
			t.Errorf("terms mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("definitions iterator", func(t *testing.T) {
		var names []string
		for name := range reg.Definitions() {
			names = append(names, name)
		}
		slices.Sort(names)
		if diff := cmp.Diff([]string{"bacon", "ham"}, names); diff != "" {
			t.Errorf("terms mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestZeroDefaultRegistry(t *testing.T) {
	var reg pc.DefaultRegistry
	if got := reg.DefinitionsForTerms(nil); len(got) != 0 {
		t.Errorf("expected no definitions, got: %v", got)
	}

	reg.AddTerm("bacon", pc.TermOptions{As: "http://bacon.yum"})
	if diff := cmp.Diff(pc.Context{"bacon": "http://bacon.yum"}, reg.DefinitionsForTerms(nil)); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}
}
