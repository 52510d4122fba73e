package pragmatic

// JSON-LD keywords emitted in compacted documents.
const (
	KeywordContext = "@context"
	KeywordID      = "@id"
	KeywordType    = "@type"
)

// isKeyword returns if the string matches a known JSON-LD keyword.
func isKeyword(s string) bool {
	switch s {
	case "@base",
		"@container",
		KeywordContext,
		"@default",
		"@direction",
		"@graph",
		KeywordID,
		"@import",
		"@included",
		"@index",
		"@json",
		"@language",
		"@list",
		"@nest",
		"@none",
		"@prefix",
		"@preserve",
		"@propagate",
		"@protected",
		"@reverse",
		"@set",
		KeywordType,
		"@value",
		"@version",
		"@vocab":
		return true
	default:
		return false
	}
}

// looksLikeKeyword determines if a string has the general shape of a JSON-LD
// keyword: "@" followed by one or more ASCII letters.
//
// Declaring a term with such a name produces documents whose keys a JSON-LD
// processor will ignore.
func looksLikeKeyword(s string) bool {
	if len(s) < 2 || s[0] != '@' {
		return false
	}

	for _, char := range s[1:] {
		if (char < 'a' || char > 'z') &&
			(char < 'A' || char > 'Z') {
			return false
		}
	}

	return true
}
