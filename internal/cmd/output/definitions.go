package output

import (
	"strconv"
	"strings"

	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/reconciler"
	"github.com/propstore/winspskb/pkg/sources"
)

// DefinitionsToTableData converts definitions to table format. Wide
// output adds the format class and alias columns.
func DefinitionsToTableData(defs []*properties.Definition, wide bool) Data {
	headers := []string{"KEY", "NAME", "SHELL PROPERTY KEY", "VALUE TYPE"}
	if wide {
		headers = append(headers, "FORMAT CLASS", "ALIAS")
	}

	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		row := []string{
			def.Key().String(),
			orDash(def.Name),
			orDash(def.ShellPropertyKey),
			orDash(def.ValueType),
		}
		if wide {
			row = append(row, orDash(def.FormatClass), orDash(def.Alias))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// DefinitionToTableData converts a single definition to a field-value
// table for detail views.
func DefinitionToTableData(def *properties.Definition) Data {
	rows := [][]string{
		{"Key", def.Key().String()},
		{"Format identifier", def.FormatIdentifier},
		{"Property identifier", strconv.FormatUint(uint64(def.PropertyIdentifier), 10)},
		{"Name", orDash(def.Name)},
		{"Shell property key", orDash(def.ShellPropertyKey)},
		{"Value type", orDash(def.ValueType)},
		{"Format class", orDash(def.FormatClass)},
		{"Alias", orDash(def.Alias)},
	}
	if len(def.Provenance) > 0 {
		rows = append(rows, []string{"Sources", strings.Join(def.Provenance, ", ")})
	}

	return Data{
		Headers: []string{"FIELD", "VALUE"},
		Rows:    rows,
	}
}

// SourceStatsToTableData converts per-source merge accounting to table
// format. Rows follow the given order; sources with no recorded stat are
// skipped.
func SourceStatsToTableData(order []sources.ID, stats map[sources.ID]reconciler.SourceStat) Data {
	rows := make([][]string, 0, len(order))
	for _, id := range order {
		stat, ok := stats[id]
		if !ok {
			continue
		}

		available := "yes"
		detail := "-"
		if !stat.Available {
			available = "no"
			detail = stat.Error
		}

		rows = append(rows, []string{
			string(id),
			available,
			strconv.Itoa(stat.Candidates),
			strconv.Itoa(stat.Dropped),
			detail,
		})
	}

	return Data{
		Headers: []string{"SOURCE", "AVAILABLE", "CANDIDATES", "DROPPED", "DETAIL"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignDefault, // SOURCE
			AlignDefault, // AVAILABLE
			AlignCenter,  // CANDIDATES
			AlignCenter,  // DROPPED
			AlignDefault, // DETAIL
		},
	}
}

// orDash substitutes a dash for empty optional fields so table cells
// never collapse.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
