// Package filter narrows definition lists by the criteria the list
// command exposes.
package filter

import (
	"strings"

	"github.com/propstore/winspskb/pkg/properties"
)

// DefinitionFilter applies filters to definition lists. The zero value
// passes everything through.
type DefinitionFilter struct {
	// FormatIdentifier keeps definitions of one property set. Canonical
	// lower-case hyphenated GUID text, no braces.
	FormatIdentifier string

	// FormatClass keeps definitions whose format class matches,
	// case-insensitively.
	FormatClass string

	// Search keeps definitions with the term anywhere in their key,
	// name, shell property key, alias, or format class.
	Search string
}

// Apply filters a slice of definitions, preserving order.
func (f *DefinitionFilter) Apply(defs []*properties.Definition) []*properties.Definition {
	if f == nil || f.isEmpty() {
		return defs
	}

	var filtered []*properties.Definition
	for _, def := range defs {
		if f.matches(def) {
			filtered = append(filtered, def)
		}
	}
	return filtered
}

func (f *DefinitionFilter) isEmpty() bool {
	return f.FormatIdentifier == "" &&
		f.FormatClass == "" &&
		f.Search == ""
}

func (f *DefinitionFilter) matches(def *properties.Definition) bool {
	if f.FormatIdentifier != "" && !f.matchesFormatIdentifier(def) {
		return false
	}
	if f.FormatClass != "" && !strings.EqualFold(def.FormatClass, f.FormatClass) {
		return false
	}
	if f.Search != "" && !f.matchesSearch(def) {
		return false
	}
	return true
}

func (f *DefinitionFilter) matchesFormatIdentifier(def *properties.Definition) bool {
	want := strings.ToLower(strings.Trim(f.FormatIdentifier, "{}"))
	return def.FormatIdentifier == want
}

func (f *DefinitionFilter) matchesSearch(def *properties.Definition) bool {
	search := strings.ToLower(f.Search)

	for _, field := range []string{
		def.Key().String(),
		def.Name,
		def.ShellPropertyKey,
		def.Alias,
		def.FormatClass,
	} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
