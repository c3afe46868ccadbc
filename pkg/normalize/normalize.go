// Package normalize canonicalizes raw source records into candidate
// entries. It is pure: every function maps input to output plus an error,
// with no side effects, so source loaders can run it record by record and
// drop the failures without aborting a load.
//
// Normalization covers the two key fields and the optional text fields:
//
//   - format identifiers are canonicalized to lower-case hyphenated GUID
//     text (36 characters, no braces)
//   - property identifiers are parsed into an unsigned integer from
//     integer or string forms, including "0x"-prefixed hex text
//   - value types pass through as trimmed text, or are rendered as
//     "0x%04x" hex text when numeric
//   - names, aliases, and format classes are cleaned per source-specific
//     Rules
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
)

// Raw is the loose shape of one record as decoded from a source stream,
// before normalization. The identifier fields tolerate the value forms
// that appear in the wild: integers, hex text, decorated GUIDs. Loaders
// decode records strictly, so a record carrying keys outside this set is
// malformed.
type Raw struct {
	// Alias is the raw alternate name, e.g. "System.Title".
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`

	// FormatClass is the raw grouping label.
	FormatClass string `json:"format_class,omitempty" yaml:"format_class,omitempty"`

	// FormatIdentifier is the raw property set GUID text, possibly braced
	// or upper-case.
	FormatIdentifier string `json:"format_identifier,omitempty" yaml:"format_identifier,omitempty"`

	// Name is the raw human-readable name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// PropertyIdentifier is the raw property identifier: an integer or a
	// string holding decimal or "0x"-prefixed hex text.
	PropertyIdentifier any `json:"property_identifier,omitempty" yaml:"property_identifier,omitempty"`

	// ShellPropertyKey is the raw SDK constant name, e.g. "PKEY_Title".
	ShellPropertyKey string `json:"shell_property_key,omitempty" yaml:"shell_property_key,omitempty"`

	// ValueType is the raw value type: tag text such as "VT_LPWSTR" or an
	// integer type code.
	ValueType any `json:"value_type,omitempty" yaml:"value_type,omitempty"`
}

// Rules is the per-source cleanup configuration. Sources decorate text
// fields differently (non-breaking spaces in scraped documentation,
// parenthetical qualifiers in header comments), so the cleanup is supplied
// by the source configuration rather than hard-coded here.
type Rules struct {
	// CollapseWhitespace folds runs of whitespace, including non-breaking
	// spaces, into single spaces.
	CollapseWhitespace bool

	// StripParentheticals removes a trailing parenthetical qualifier,
	// e.g. "Date created (UTC)" becomes "Date created".
	StripParentheticals bool

	// AliasPrefixes lists the alias namespaces this source legitimately
	// produces, e.g. "System.". When set, an alias that matches none of
	// the prefixes is treated as decoration and cleared. Empty means
	// aliases pass through unfiltered.
	AliasPrefixes []string
}

// Candidate normalizes a raw record into a candidate entry. The format
// and property identifiers must normalize or the whole record fails with
// *errors.MalformedIdentifierError; optional fields are cleaned per rules
// and dropped to empty when decoration is all they carried.
func Candidate(raw Raw, rules Rules) (properties.Candidate, error) {
	fid, err := GUID(raw.FormatIdentifier)
	if err != nil {
		return properties.Candidate{}, err
	}

	pid, err := propertyIdentifier(raw.PropertyIdentifier)
	if err != nil {
		return properties.Candidate{}, err
	}

	vt, err := valueType(raw.ValueType)
	if err != nil {
		return properties.Candidate{}, err
	}

	return properties.Candidate{
		FormatIdentifier:   fid,
		PropertyIdentifier: pid,
		Name:               cleanText(raw.Name, rules),
		ShellPropertyKey:   strings.TrimSpace(raw.ShellPropertyKey),
		ValueType:          vt,
		FormatClass:        cleanText(raw.FormatClass, rules),
		Alias:              cleanAlias(raw.Alias, rules),
	}, nil
}

// GUID canonicalizes GUID text: surrounding space and braces are
// stripped, the result is validated and rendered in lower-case hyphenated
// form. Idempotent on canonical input.
func GUID(s string) (string, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")

	id, err := uuid.Parse(text)
	if err != nil {
		return "", &errors.MalformedIdentifierError{
			Field: "format_identifier",
			Value: s,
			Err:   err,
		}
	}
	return id.String(), nil
}

// propertyIdentifier parses the raw property identifier value into an
// unsigned 32-bit integer. Accepts the integer forms YAML decoding
// produces plus decimal or "0x"-prefixed hex strings.
func propertyIdentifier(v any) (uint32, error) {
	malformed := func(err error) error {
		return &errors.MalformedIdentifierError{
			Field: "property_identifier",
			Value: fmt.Sprintf("%v", v),
			Err:   err,
		}
	}

	switch value := v.(type) {
	case nil:
		return 0, malformed(fmt.Errorf("missing"))
	case int:
		return uint32FromInt64(int64(value), malformed)
	case int8:
		return uint32FromInt64(int64(value), malformed)
	case int16:
		return uint32FromInt64(int64(value), malformed)
	case int32:
		return uint32FromInt64(int64(value), malformed)
	case int64:
		return uint32FromInt64(value, malformed)
	case uint:
		return uint32FromUint64(uint64(value), malformed)
	case uint8:
		return uint32(value), nil
	case uint16:
		return uint32(value), nil
	case uint32:
		return value, nil
	case uint64:
		return uint32FromUint64(value, malformed)
	case float64:
		if value != math.Trunc(value) || value < 0 || value > math.MaxUint32 {
			return 0, malformed(fmt.Errorf("not a 32-bit unsigned integer"))
		}
		return uint32(value), nil
	case string:
		text := strings.TrimSpace(value)
		if text == "" {
			return 0, malformed(fmt.Errorf("missing"))
		}
		parsed, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), base(text), 32)
		if err != nil {
			return 0, malformed(err)
		}
		return uint32(parsed), nil
	default:
		return 0, malformed(fmt.Errorf("unsupported type %T", v))
	}
}

func base(text string) int {
	if strings.HasPrefix(text, "0x") {
		return 16
	}
	return 10
}

func uint32FromInt64(v int64, malformed func(error) error) (uint32, error) {
	if v < 0 {
		return 0, malformed(fmt.Errorf("negative"))
	}
	if v > math.MaxUint32 {
		return 0, malformed(fmt.Errorf("exceeds 32 bits"))
	}
	return uint32(v), nil
}

func uint32FromUint64(v uint64, malformed func(error) error) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, malformed(fmt.Errorf("exceeds 32 bits"))
	}
	return uint32(v), nil
}

// valueType renders the raw value type into text: strings pass through
// trimmed, integer type codes become "0x%04x" hex text.
func valueType(v any) (string, error) {
	switch value := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(value), nil
	case int:
		return hexTag(int64(value))
	case int64:
		return hexTag(value)
	case uint64:
		if value > math.MaxInt64 {
			return "", fmt.Errorf("value type code %d out of range", value)
		}
		return hexTag(int64(value))
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func hexTag(v int64) (string, error) {
	if v < 0 {
		return "", fmt.Errorf("value type code %d out of range", v)
	}
	return fmt.Sprintf("0x%04x", v), nil
}

// cleanText trims a text field and applies the whitespace and
// parenthetical rules. Returns "" when nothing but decoration remains.
func cleanText(s string, rules Rules) string {
	s = strings.TrimSpace(s)
	if rules.StripParentheticals && strings.HasSuffix(s, ")") {
		if i := strings.LastIndex(s, " ("); i > 0 {
			s = strings.TrimSpace(s[:i])
		}
	}
	if rules.CollapseWhitespace {
		// strings.Fields splits on all Unicode whitespace, which folds
		// non-breaking spaces as well.
		s = strings.Join(strings.Fields(s), " ")
	}
	return s
}

// cleanAlias cleans an alias like any text field, then enforces the
// source's recognized alias namespaces.
func cleanAlias(s string, rules Rules) string {
	s = cleanText(s, rules)
	if s == "" || len(rules.AliasPrefixes) == 0 {
		return s
	}
	for _, prefix := range rules.AliasPrefixes {
		if strings.HasPrefix(s, prefix) {
			return s
		}
	}
	return ""
}
