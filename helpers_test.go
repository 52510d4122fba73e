package pragmatic_test

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	pc "sourcery.dny.nu/pragmatic"
	"sourcery.dny.nu/pragmatic/internal/json"
)

var dump = flag.Bool("dump", false, "dump the compacted JSON on test failure")

type term struct {
	name string
	opts pc.TermOptions
}

// NewSchema builds a schema declaring terms, failing the test on
// configuration errors.
func NewSchema(t *testing.T, terms ...term) *pc.Schema {
	t.Helper()

	b := pc.NewBuilder()
	for _, tm := range terms {
		if err := b.Contextualize(tm.name, tm.opts); err != nil {
			t.Fatalf("failed to declare %s: %s", tm.name, err)
		}
	}
	return b.Build()
}

// Dump logs the JSON encoding of doc when the -dump flag is set.
func Dump(t *testing.T, doc pc.Document) {
	t.Helper()

	if !*dump {
		return
	}

	data, _ := json.MarshalIndent(doc, "", "    ")
	t.Logf("compacted to: %s", string(data))
}

// JSONDiff should be used when diffing JSON documents.
func JSONDiff() cmp.Option {
	return cmp.Options{
		cmp.FilterValues(func(x, y json.RawMessage) bool {
			return json.Valid(x) && json.Valid(y)
		}, cmp.Transformer("ParseJSON", func(in json.RawMessage) (out any) {
			if err := json.Unmarshal(in, &out); err != nil {
				panic(err) // should never occur given previous filter to ensure valid JSON
			}
			return out
		})),
	}
}
