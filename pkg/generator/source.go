package generator

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
)

// writeLookupSource writes the generated Go lookup source: a static map
// from lookup keys to definitions plus a Lookup function. The generated
// package depends only on the standard library.
func (g *Generator) writeLookupSource() (string, error) {
	path := filepath.Join(g.outputDir, constants.GeneratedSourceFile)

	code, err := renderLookupSource(g.pkgName, g.kb.Definitions().List())
	if err != nil {
		return "", errors.NewGenerationError("lookup source", path, err)
	}
	if err := os.WriteFile(path, code, constants.FilePermissions); err != nil {
		return "", errors.NewGenerationError("lookup source", path, err)
	}
	return path, nil
}

// renderLookupSource emits the lookup source text and runs it through
// go/format so the output is gofmt-clean. Definitions are emitted in
// canonical key order.
func renderLookupSource(pkgName string, defs []*properties.Definition) ([]byte, error) {
	var b strings.Builder

	b.WriteString("// Code generated by winspskb. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "// Package %s provides a static lookup table of Windows serialized\n", pkgName)
	b.WriteString("// property definitions.\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)

	b.WriteString("import (\n")
	b.WriteString("\"strconv\"\n")
	b.WriteString("\"strings\"\n")
	b.WriteString(")\n\n")

	b.WriteString("// Definition describes one Windows serialized property.\n")
	b.WriteString("type Definition struct {\n")
	b.WriteString("FormatIdentifier string\n")
	b.WriteString("PropertyIdentifier uint32\n")
	b.WriteString("Name string\n")
	b.WriteString("ShellPropertyKey string\n")
	b.WriteString("ValueType string\n")
	b.WriteString("FormatClass string\n")
	b.WriteString("Alias string\n")
	b.WriteString("}\n\n")

	b.WriteString("// definitions maps lookup keys, \"{format identifier}/property identifier\",\n")
	b.WriteString("// to property definitions.\n")
	b.WriteString("var definitions = map[string]Definition{\n")
	for _, def := range defs {
		fmt.Fprintf(&b, "%q: {\n", def.Key().String())
		fmt.Fprintf(&b, "FormatIdentifier: %q,\n", def.FormatIdentifier)
		fmt.Fprintf(&b, "PropertyIdentifier: %d,\n", def.PropertyIdentifier)
		writeStringField(&b, "Name", def.Name)
		writeStringField(&b, "ShellPropertyKey", def.ShellPropertyKey)
		writeStringField(&b, "ValueType", def.ValueType)
		writeStringField(&b, "FormatClass", def.FormatClass)
		writeStringField(&b, "Alias", def.Alias)
		b.WriteString("},\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("// Lookup returns the definition for a format identifier and property\n")
	b.WriteString("// identifier pair and whether the pair is known. The format identifier\n")
	b.WriteString("// may be braced or unbraced, in any letter case.\n")
	b.WriteString("func Lookup(formatID string, propertyID uint32) (Definition, bool) {\n")
	b.WriteString("fid := strings.ToLower(strings.Trim(strings.TrimSpace(formatID), \"{}\"))\n")
	b.WriteString("def, ok := definitions[\"{\"+fid+\"}/\"+strconv.FormatUint(uint64(propertyID), 10)]\n")
	b.WriteString("return def, ok\n")
	b.WriteString("}\n")

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return formatted, nil
}

// writeStringField emits one optional string field, omitting empties so
// the generated map mirrors the YAML artifact's omitempty behavior.
func writeStringField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %q,\n", name, value)
}
