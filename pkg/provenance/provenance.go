// Package provenance records which source supplied each field of a
// merged definition and why the merge engine picked it. Tracking is
// optional; a disabled tracker costs nothing and returns nothing.
package provenance

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Record is one source's claim on one field: the value it offered and,
// for the winning claim, the reason it was selected.
type Record struct {
	// Source is the tag of the source that offered the value.
	Source string `json:"source" yaml:"source"`

	// Field is the definition field name, e.g. "name".
	Field string `json:"field" yaml:"field"`

	// Value is the offered field value.
	Value string `json:"value" yaml:"value"`

	// Reason explains the outcome: why this claim won, or which source
	// outranked it.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Selected marks the claim that made it into the definition.
	Selected bool `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Map holds field claims for many definitions. Keys take the form
// "<lookup key>:<field>", e.g.
// "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2:name". The winning claim
// is first in each slice.
type Map map[string][]Record

// Tracker accumulates provenance during a merge.
type Tracker interface {
	// Track records the claims on one field of one definition. The
	// winning claim goes first.
	Track(key, field string, records ...Record)

	// FindByField returns the claims on a specific field.
	FindByField(key, field string) []Record

	// FindByKey returns all claims for a definition, grouped by field.
	FindByKey(key string) map[string][]Record

	// Map returns a copy of everything tracked so far.
	Map() Map

	// Clear removes all tracked data.
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	records Map
	enabled bool
}

// NewTracker creates a tracker. A disabled tracker discards everything,
// which keeps full merges cheap when nobody asks for provenance.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		records: make(Map),
		enabled: enabled,
	}
}

// Track records the claims on one field.
func (t *tracker) Track(key, field string, records ...Record) {
	if !t.enabled || len(records) == 0 {
		return
	}
	mapKey := makeKey(key, field)
	t.records[mapKey] = append(t.records[mapKey], records...)
}

// FindByField returns the claims on a specific field.
func (t *tracker) FindByField(key, field string) []Record {
	if !t.enabled {
		return nil
	}
	return t.records[makeKey(key, field)]
}

// FindByKey returns all claims for a definition, grouped by field.
func (t *tracker) FindByKey(key string) map[string][]Record {
	if !t.enabled {
		return nil
	}

	result := make(map[string][]Record)
	prefix := key + ":"
	for mapKey, records := range t.records {
		if field, found := strings.CutPrefix(mapKey, prefix); found {
			result[field] = records
		}
	}
	return result
}

// Map returns a copy of everything tracked so far.
func (t *tracker) Map() Map {
	if !t.enabled {
		return nil
	}

	result := make(Map, len(t.records))
	for k, v := range t.records {
		result[k] = slices.Clone(v)
	}
	return result
}

// Clear removes all tracked data.
func (t *tracker) Clear() {
	t.records = make(Map)
}

// makeKey builds the map key for one field of one definition.
func makeKey(key, field string) string {
	return key + ":" + field
}

// Sources returns the sorted set of sources whose claims won at least
// one field of the given definition.
func (m Map) Sources(key string) []string {
	seen := make(map[string]bool)
	prefix := key + ":"
	for mapKey, records := range m {
		if !strings.HasPrefix(mapKey, prefix) {
			continue
		}
		for _, rec := range records {
			if rec.Selected {
				seen[rec.Source] = true
			}
		}
	}

	sources := make([]string, 0, len(seen))
	for source := range seen {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// Report groups tracked claims by definition for display.
type Report struct {
	// Entries maps lookup keys to their field claims.
	Entries map[string]map[string][]Record
}

// GenerateReport builds a report from a provenance map.
func GenerateReport(m Map) *Report {
	report := &Report{
		Entries: make(map[string]map[string][]Record),
	}

	for mapKey, records := range m {
		// The field name follows the last colon; lookup keys never
		// contain one.
		idx := strings.LastIndex(mapKey, ":")
		if idx < 0 {
			continue
		}
		key, field := mapKey[:idx], mapKey[idx+1:]

		fields, ok := report.Entries[key]
		if !ok {
			fields = make(map[string][]Record)
			report.Entries[key] = fields
		}
		fields[field] = records
	}

	return report
}

// String renders the report with definitions and fields in sorted
// order, so the same merge always prints the same report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	keys := make([]string, 0, len(r.Entries))
	for key := range r.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fields := r.Entries[key]
		sb.WriteString(key + "\n")
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")

		fieldNames := make([]string, 0, len(fields))
		for field := range fields {
			fieldNames = append(fieldNames, field)
		}
		sort.Strings(fieldNames)

		for _, field := range fieldNames {
			records := fields[field]
			sb.WriteString(fmt.Sprintf("  %s:\n", field))
			for _, rec := range records {
				marker := " "
				if rec.Selected {
					marker = "*"
				}
				sb.WriteString(fmt.Sprintf("    %s %q from %s", marker, rec.Value, rec.Source))
				if rec.Reason != "" {
					sb.WriteString(" (" + rec.Reason + ")")
				}
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
