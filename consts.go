package pragmatic

const (
	// NamespaceSeparator joins a map-valued term and the keys of its map
	// when the map is flattened into the document, as in "term:key".
	NamespaceSeparator = ":"

	// MaxNestingDepth is the default limit on how deep compaction will
	// recurse into nested contextualizable values.
	MaxNestingDepth = 64
)

