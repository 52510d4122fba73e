package main

import (
	"bytes"
	"go/format"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"sourcery.dny.nu/pragmatic"
)

const (
	xsdPrefix1 = "http://www.w3.org/2001/XMLSchema#"
	xsdPrefix2 = "https://www.w3.org/2001/XMLSchema#"
)

func genCmd(opts *options) *cobra.Command {
	var (
		pkgName   string
		namespace string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go constants for the IRIs of a type's terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			src, err := generate(s, opts.typeName, pkgName, namespace)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(output, src, 0o644)
		},
	}

	cmd.Flags().StringVar(&pkgName, "package", "vocab", "Go package name")
	cmd.Flags().StringVar(&namespace, "namespace", "", "IRI prefix shared by the terms")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")

	return cmd
}

func generate(s *session, typeName, pkgName, namespace string) ([]byte, error) {
	schema, _ := s.vocab.Schema(typeName)
	spec, _ := s.vocab.Spec(typeName)

	reg, ok := schema.Registry().(*pragmatic.DefaultRegistry)
	if !ok {
		reg = pragmatic.NewDefaultRegistry()
	}

	var result bytes.Buffer
	result.WriteString("// Code generated by pragmatic gen. DO NOT EDIT.\n\n")
	result.WriteString("package " + pkgName + "\n\n")

	if namespace != "" {
		result.WriteString("// Namespace is the IRI prefix used by the terms of " + typeName + ".\n")
		result.WriteString("const Namespace = " + strconv.Quote(namespace) + "\n\n")
	}

	if typeIRI, ok := schema.TypeIRI(); ok {
		goType := "Type" + goName(typeName)
		result.WriteString("// " + goType + " is the @type of " + typeName + ".\n")
		result.WriteString("const " + goType + " = " + iriExpr(typeIRI, namespace) + "\n\n")
	}

	result.WriteString("const (\n")
	for _, term := range reg.Terms() {
		def, _ := reg.Definition(term)
		value, ok := def.IRI()
		if !ok {
			s.logger.Info("skipping term without an IRI", slog.String("term", term))
			continue
		}

		goTerm := goName(term)
		result.WriteString("\t// " + goTerm + " " + describe(def, spec.Nested[term]) + "\n")
		result.WriteString("\t" + goTerm + " = " + iriExpr(value, namespace) + "\n")
	}
	result.WriteString(")\n")

	return format.Source(result.Bytes())
}

func iriExpr(value, namespace string) string {
	if namespace != "" && strings.HasPrefix(value, namespace) && value != namespace {
		return "Namespace + " + strconv.Quote(strings.TrimPrefix(value, namespace))
	}
	return strconv.Quote(value)
}

func describe(def pragmatic.TermDefinition, nested string) string {
	if nested != "" {
		return "holds a " + nested + "."
	}

	typ, ok := def.Type()
	if !ok {
		return "is a string."
	}

	switch {
	case typ == pragmatic.KeywordID:
		return "is an IRI."
	case strings.HasPrefix(typ, xsdPrefix1), strings.HasPrefix(typ, xsdPrefix2):
		typ = strings.TrimPrefix(typ, xsdPrefix1)
		typ = strings.TrimPrefix(typ, xsdPrefix2)
		switch typ {
		case "float":
			typ = typ + ", equivalent to a Go float32"
		case "integer":
			typ = typ + ", use a string for values beyond 53 bits"
		case "dateTime":
			typ = typ + ", equivalent to a time.Time in RFC3339Nano"
		}
		return "is an xml:" + typ + "."
	default:
		return "is a " + typ + "."
	}
}

func isUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// goName turns a term into an exported Go identifier. Separators are dropped
// and the part following them is capitalised.
func goName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, part := range parts {
		mapped := part
		if strings.HasPrefix(mapped, "id") || strings.HasPrefix(mapped, "Id") {
			mapped = "ID" + mapped[2:]
		}
		if strings.HasSuffix(mapped, "id") || strings.HasSuffix(mapped, "Id") {
			mapped = mapped[:len(mapped)-2] + "ID"
		}

		mapped = strings.ReplaceAll(mapped, "url", "URL")
		mapped = strings.ReplaceAll(mapped, "Url", "URL")

		r, size := utf8.DecodeRuneInString(mapped)
		b.WriteRune(unicode.ToTitle(r))
		b.WriteString(mapped[size:])
	}

	name := b.String()
	if name == "" || !isUpper(name) {
		name = "Term" + name
	}
	return name
}
