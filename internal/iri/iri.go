// Package iri holds the small amount of IRI handling needed to validate
// declarations and build identifiers.
package iri

import (
	"net/url"
)

// IsAbsolute returns if s parses as an absolute IRI without any escaping
// inconsistencies.
func IsAbsolute(s string) bool {
	u, err := url.Parse(s)
	return err == nil &&
		u.IsAbs() &&
		(u.RawPath == "" || u.RawPath == u.EscapedPath()) &&
		(u.RawFragment == "" || u.RawFragment == u.EscapedFragment())
}

// Resolve resolves val against base. An empty base returns val unchanged.
func Resolve(base string, val string) (string, error) {
	if base == "" {
		return val, nil
	}

	r, err := url.Parse(val)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	return u.ResolveReference(r).String(), nil
}
