package properties

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
)

// record is the canonical YAML document shape of one definition. Struct
// field declaration order is the canonical serialization order: keys are
// emitted alphabetically, absent optional fields are omitted, and the
// format and property identifiers are always present.
type record struct {
	Alias              string    `yaml:"alias,omitempty"`
	FormatClass        string    `yaml:"format_class,omitempty"`
	FormatIdentifier   string    `yaml:"format_identifier"`
	Name               string    `yaml:"name,omitempty"`
	PropertyIdentifier uint32    `yaml:"property_identifier"`
	ShellPropertyKey   string    `yaml:"shell_property_key,omitempty"`
	ValueType          scalarTag `yaml:"value_type,omitempty"`
}

// scalarTag is a string that also decodes from unquoted scalars that YAML
// would otherwise type as integers, such as the hexadecimal value type
// text "0x000b".
type scalarTag string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (s *scalarTag) UnmarshalYAML(b []byte) error {
	text := strings.TrimSpace(string(b))
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') ||
			(text[0] == '\'' && text[len(text)-1] == '\'') {
			text = text[1 : len(text)-1]
		}
	}
	*s = scalarTag(text)
	return nil
}

// recordFromDefinition converts a definition to its wire record.
// Provenance never crosses into the serialized form.
func recordFromDefinition(def *Definition) record {
	return record{
		Alias:              def.Alias,
		FormatClass:        def.FormatClass,
		FormatIdentifier:   def.FormatIdentifier,
		Name:               def.Name,
		PropertyIdentifier: def.PropertyIdentifier,
		ShellPropertyKey:   def.ShellPropertyKey,
		ValueType:          scalarTag(def.ValueType),
	}
}

// definition converts a wire record to a definition, canonicalizing the
// format identifier. Returns an error when the format identifier is
// missing or not a valid GUID.
func (r record) definition() (*Definition, error) {
	fid := strings.TrimSpace(r.FormatIdentifier)
	if fid == "" {
		return nil, stderrors.New("missing format identifier")
	}

	id, err := uuid.Parse(fid)
	if err != nil {
		return nil, fmt.Errorf("format identifier %q: %w", fid, err)
	}

	return &Definition{
		FormatIdentifier:   id.String(),
		PropertyIdentifier: r.PropertyIdentifier,
		Name:               strings.TrimSpace(r.Name),
		ShellPropertyKey:   strings.TrimSpace(r.ShellPropertyKey),
		ValueType:          strings.TrimSpace(string(r.ValueType)),
		FormatClass:        strings.TrimSpace(r.FormatClass),
		Alias:              strings.TrimSpace(r.Alias),
	}, nil
}

// empty reports whether the record carries no data, as decoded from a
// document holding only comments or whitespace.
func (r record) empty() bool {
	return r == record{}
}

// EncodeDefinitions renders definitions in the canonical knowledge base
// file form: a comment header line followed by one YAML document per
// definition, each introduced by a "---" separator, in key order.
// Encoding the same definitions always yields byte-identical output.
func EncodeDefinitions(defs []*Definition) ([]byte, error) {
	sorted := slices.Clone(defs)
	slices.SortFunc(sorted, func(a, b *Definition) int {
		return a.Key().Compare(b.Key())
	})

	var buf bytes.Buffer
	buf.WriteString(constants.KnowledgeBaseHeader)
	buf.WriteByte('\n')

	for _, def := range sorted {
		if def == nil {
			continue
		}
		data, err := yaml.MarshalWithOptions(recordFromDefinition(def),
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
		if err != nil {
			return nil, errors.WrapParse("yaml", def.Key().String(), err)
		}
		buf.WriteString("---\n")
		buf.Write(data)
	}

	return buf.Bytes(), nil
}

// DecodeDefinitions parses a canonical knowledge base file: multi-document
// YAML with one definition per document. Unknown document keys are
// rejected. Documents holding only comments or whitespace are skipped.
// Decoding is strict: the first malformed document fails the whole read,
// since canonical files are only ever produced by EncodeDefinitions.
func DecodeDefinitions(data []byte) ([]*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())

	var defs []*Definition
	for doc := 1; ; doc++ {
		var rec record
		err := dec.Decode(&rec)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "yaml",
				Message: fmt.Sprintf("document %d: %v", doc, err),
				Err:     err,
			}
		}
		if rec.empty() {
			continue
		}

		def, err := rec.definition()
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "yaml",
				Message: fmt.Sprintf("document %d: %v", doc, err),
				Err:     err,
			}
		}
		defs = append(defs, def)
	}

	return defs, nil
}
