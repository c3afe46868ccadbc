// Package properties provides the core knowledge base for Windows Shell
// property store metadata. It defines the property key space, candidate and
// canonical record shapes, a thread-safe definitions collection, and a
// KnowledgeBase with YAML persistence.
//
// A property is addressed by its shell property key: the combination of a
// format identifier (a GUID naming the property set) and a property
// identifier (an integer unique within that set). The knowledge base maps
// each key to one resolved definition carrying the property's name, value
// type, format class, alias, and shell property key constant.
//
// Example usage:
//
//	// Create a knowledge base from the embedded definitions
//	kb, err := properties.New(properties.WithEmbedded())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Look up a single property
//	key := properties.Key{
//	    FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
//	    PropertyIdentifier: 2,
//	}
//	def, err := kb.Definition(key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(def.Name) // "Title"
//
//	// Iterate all definitions in canonical order
//	for def := range kb.All() {
//	    fmt.Println(def.Key())
//	}
package properties

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/propstore/winspskb/pkg/errors"
)

// Key uniquely addresses one property within the shell property store
// model: a format identifier GUID plus a property identifier integer.
type Key struct {
	// FormatIdentifier is the canonical lower-case hyphenated GUID text
	// of the property set (36 characters, no braces).
	FormatIdentifier string

	// PropertyIdentifier is the integer identifying the property within
	// its format identifier's namespace.
	PropertyIdentifier uint32
}

// String renders the key in lookup form: the format identifier GUID in
// braces, a slash, and the decimal property identifier.
// For example "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2".
func (k Key) String() string {
	return fmt.Sprintf("{%s}/%d", k.FormatIdentifier, k.PropertyIdentifier)
}

// Compare orders keys by format identifier, then property identifier.
// It returns -1, 0, or 1 like strings.Compare.
func (k Key) Compare(other Key) int {
	if c := strings.Compare(k.FormatIdentifier, other.FormatIdentifier); c != 0 {
		return c
	}
	switch {
	case k.PropertyIdentifier < other.PropertyIdentifier:
		return -1
	case k.PropertyIdentifier > other.PropertyIdentifier:
		return 1
	default:
		return 0
	}
}

// ParseKey parses a lookup key of the form "{<guid>}/<pid>" back into a
// Key. The braces are optional and the GUID is canonicalized to lower
// case. The property identifier must be a decimal unsigned integer.
func ParseKey(s string) (Key, error) {
	fidText, pidText, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Key{}, &errors.ValidationError{
			Field:   "key",
			Value:   s,
			Message: "expected {format-identifier}/property-identifier",
		}
	}

	fidText = strings.TrimSpace(fidText)
	fidText = strings.TrimPrefix(fidText, "{")
	fidText = strings.TrimSuffix(fidText, "}")

	fid, err := uuid.Parse(fidText)
	if err != nil {
		return Key{}, &errors.ValidationError{
			Field:   "format identifier",
			Value:   fidText,
			Message: "not a valid GUID",
		}
	}

	pid, err := strconv.ParseUint(strings.TrimSpace(pidText), 10, 32)
	if err != nil {
		return Key{}, &errors.ValidationError{
			Field:   "property identifier",
			Value:   pidText,
			Message: "not a valid unsigned integer",
		}
	}

	return Key{
		FormatIdentifier:   fid.String(),
		PropertyIdentifier: uint32(pid),
	}, nil
}

// Candidate is one source's claim about one property key. Candidates are
// produced by source loaders and consumed by the merge engine; they carry
// no source tag themselves because the merge engine receives them grouped
// by source.
type Candidate struct {
	// FormatIdentifier is the canonical lower-case hyphenated GUID text.
	FormatIdentifier string `json:"format_identifier" yaml:"format_identifier"`

	// PropertyIdentifier is the property's integer identifier.
	PropertyIdentifier uint32 `json:"property_identifier" yaml:"property_identifier"`

	// Name is the human-readable property name, e.g. "Title".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// ShellPropertyKey is the Windows SDK constant naming this key,
	// e.g. "PKEY_Title".
	ShellPropertyKey string `json:"shell_property_key,omitempty" yaml:"shell_property_key,omitempty"`

	// ValueType is the property value type tag, either a named tag such
	// as "VT_LPWSTR" or normalized hexadecimal text such as "0x000b".
	ValueType string `json:"value_type,omitempty" yaml:"value_type,omitempty"`

	// FormatClass is the grouping label of the format identifier,
	// e.g. "FMTID_SummaryInformation".
	FormatClass string `json:"format_class,omitempty" yaml:"format_class,omitempty"`

	// Alias is an alternate property name, e.g. "System.Title".
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Key returns the candidate's property key.
func (c Candidate) Key() Key {
	return Key{
		FormatIdentifier:   c.FormatIdentifier,
		PropertyIdentifier: c.PropertyIdentifier,
	}
}

// Definition is the single resolved metadata record for one property key.
// Definitions are created by the merge engine and treated as immutable
// once the knowledge base is frozen.
type Definition struct {
	// FormatIdentifier is the canonical lower-case hyphenated GUID text.
	FormatIdentifier string `json:"format_identifier" yaml:"format_identifier"`

	// PropertyIdentifier is the property's integer identifier.
	PropertyIdentifier uint32 `json:"property_identifier" yaml:"property_identifier"`

	// Name is the human-readable property name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// ShellPropertyKey is the Windows SDK constant naming this key.
	ShellPropertyKey string `json:"shell_property_key,omitempty" yaml:"shell_property_key,omitempty"`

	// ValueType is the property value type tag.
	ValueType string `json:"value_type,omitempty" yaml:"value_type,omitempty"`

	// FormatClass is the grouping label of the format identifier.
	FormatClass string `json:"format_class,omitempty" yaml:"format_class,omitempty"`

	// Alias is an alternate property name.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`

	// Provenance is the sorted set of source tags that contributed at
	// least one field to this definition. It is reported in run results
	// but never serialized into the knowledge base artifact.
	Provenance []string `json:"provenance,omitempty" yaml:"-"`
}

// Key returns the definition's property key.
func (d *Definition) Key() Key {
	return Key{
		FormatIdentifier:   d.FormatIdentifier,
		PropertyIdentifier: d.PropertyIdentifier,
	}
}

// Candidate returns the definition's fields as a candidate, dropping
// provenance. Used when a persisted knowledge base is re-ingested as a
// baseline source.
func (d *Definition) Candidate() Candidate {
	return Candidate{
		FormatIdentifier:   d.FormatIdentifier,
		PropertyIdentifier: d.PropertyIdentifier,
		Name:               d.Name,
		ShellPropertyKey:   d.ShellPropertyKey,
		ValueType:          d.ValueType,
		FormatClass:        d.FormatClass,
		Alias:              d.Alias,
	}
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	clone := *d
	if d.Provenance != nil {
		clone.Provenance = make([]string, len(d.Provenance))
		copy(clone.Provenance, d.Provenance)
	}
	return &clone
}

// String returns the lookup key followed by the property name, if any.
func (d *Definition) String() string {
	if d.Name == "" {
		return d.Key().String()
	}
	return d.Key().String() + " " + d.Name
}
