package pragmatic

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Catalog associates Go types with their [Schema].
//
// It lets types that can't or shouldn't implement [Contextualizable] take
// part in compaction. Install it on a [Compactor] with [WithCatalog].
type Catalog struct {
	mu      sync.RWMutex
	schemas map[reflect.Type]*Schema
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		schemas: make(map[reflect.Type]*Schema),
	}
}

// Register associates t with s. Registering a type again replaces its schema.
func (c *Catalog) Register(t reflect.Type, s *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.schemas == nil {
		c.schemas = make(map[reflect.Type]*Schema)
	}
	c.schemas[t] = s
}

// Bind registers s for the type T.
//
// Pointer and non-pointer types are distinct: bind *T when the values being
// compacted are pointers.
func Bind[T any](c *Catalog, s *Schema) {
	c.Register(reflect.TypeFor[T](), s)
}

// Lookup returns the schema registered for the dynamic type of v.
func (c *Catalog) Lookup(v any) (*Schema, bool) {
	if c == nil || v == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.schemas[reflect.TypeOf(v)]
	return s, ok
}

// Types returns the registered types, sorted by name.
func (c *Catalog) Types() []reflect.Type {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]reflect.Type, 0, len(c.schemas))
	for t := range c.schemas {
		res = append(res, t)
	}

	slices.SortFunc(res, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return res
}
