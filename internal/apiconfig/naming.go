package apiconfig

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Slug lowercases s and replaces every byte outside [a-z0-9] with '-'.
// It is the identifier form used for manifest keys and integration ids.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Ident strips every non-alphanumeric byte and lowercases the rest.
// Generated client method names use this form; two endpoint names may
// collapse to the same ident.
func Ident(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// Title uppercases the first letter of each '-', '_', '.' or space
// separated word, matching how provider labels are synthesized from app
// names ("google drive" -> "Google Drive").
func Title(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '-' || c == '_' || c == '.':
			b.WriteByte(c)
			start = true
		case start && c >= 'a' && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
			start = false
		default:
			b.WriteByte(c)
			start = false
		}
	}
	return b.String()
}

// TypeName builds an exported CamelCase identifier from a free-form
// name, for generated class and output type names.
func TypeName(s string) string {
	cleaned := Slug(s)
	if cleaned == "" {
		return ""
	}
	return strcase.ToCamel(cleaned)
}
