// Package vocabfile reads term declarations from YAML or JSONC files.
//
// A vocabulary file declares one or more model types:
//
//	types:
//	  Person:
//	    type: http://schema.org/Person
//	    id:
//	      base: https://example.org/people/
//	      template: "{handle}"
//	    terms:
//	      name: http://schema.org/name
//	      born:
//	        as: http://schema.org/birthDate
//	        type: http://www.w3.org/2001/XMLSchema#date
//	      knows: http://schema.org/knows
//	    nested:
//	      knows: Person
//
// A term is either the IRI it maps to, or an object with "as" and "type". The
// "nested" section names the type of fields holding other models, which lets
// [Vocabulary.Resource] build nested resources out of decoded JSON.
package vocabfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"sourcery.dny.nu/pragmatic/internal/json"
)

// ErrInvalidVocabulary is returned for vocabulary files that can be parsed
// but don't make sense.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Format is the encoding of a vocabulary file.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON        // JSON with comments and trailing commas
)

// FormatFromPath picks the format based on the extension of path. Anything
// that isn't .json, .jsonc or .jsonld is treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".jsonld":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// File is the decoded content of a vocabulary file.
type File struct {
	Types map[string]TypeSpec `yaml:"types" json:"types"`
}

// TypeSpec holds the declarations of a single model type.
type TypeSpec struct {
	Type   string              `yaml:"type,omitempty" json:"type,omitempty"`
	ID     *IDSpec             `yaml:"id,omitempty" json:"id,omitempty"`
	Terms  map[string]TermSpec `yaml:"terms,omitempty" json:"terms,omitempty"`
	Nested map[string]string   `yaml:"nested,omitempty" json:"nested,omitempty"`
}

// IDSpec describes how the @id of an instance is computed. Exactly one of
// Template and UUID must be set.
type IDSpec struct {
	// Base is resolved against to produce the final IRI.
	Base string `yaml:"base,omitempty" json:"base,omitempty"`
	// Template holds {field} placeholders that are replaced with the
	// instance's field values.
	Template string    `yaml:"template,omitempty" json:"template,omitempty"`
	UUID     *UUIDSpec `yaml:"uuid,omitempty" json:"uuid,omitempty"`
}

// UUIDSpec derives a name based UUID from a field of the instance.
type UUIDSpec struct {
	// Namespace is a UUID, or one of the predefined namespaces dns, url,
	// oid and x500.
	Namespace string `yaml:"namespace" json:"namespace"`
	Field     string `yaml:"field" json:"field"`
}

// TermSpec is a single term declaration. Nil fields are absent.
type TermSpec struct {
	As   *string `yaml:"as,omitempty" json:"as,omitempty"`
	Type *string `yaml:"type,omitempty" json:"type,omitempty"`
}

type termSpec TermSpec

func (t *TermSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		t.As = &s
		return nil
	}

	var spec termSpec
	if err := node.Decode(&spec); err != nil {
		return err
	}
	*t = TermSpec(spec)
	return nil
}

func (t *TermSpec) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err == nil {
		t.As = s
		return nil
	}

	var spec termSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	*t = TermSpec(spec)
	return nil
}

// Parse decodes a vocabulary file.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, fmt.Errorf("parsing vocabulary: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing vocabulary: %w", err)
		}
	}

	return &f, nil
}

// ReadFile reads and decodes the vocabulary file at path. The format is
// derived from the file extension.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}
