package reconciler

import (
	"slices"
	"sort"

	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/provenance"
	"github.com/propstore/winspskb/pkg/sources"
)

// mergeFields lists the definition fields the merger resolves, in the
// order they are resolved. The key fields are never merged; they define
// the group.
var mergeFields = []string{
	"name",
	"shell_property_key",
	"value_type",
	"format_class",
	"alias",
}

// merger builds definitions from grouped claims, one field at a time.
type merger struct {
	strategy Strategy
	tracker  provenance.Tracker
}

// newMerger creates a merger. The tracker may be disabled but never nil.
func newMerger(strategy Strategy, tracker provenance.Tracker) *merger {
	return &merger{
		strategy: strategy,
		tracker:  tracker,
	}
}

// merge resolves every property key into a single definition. Keys are
// processed in canonical order and fields in a fixed order, so the same
// claims always merge into the same definitions. Returns the merged
// definitions and the number of genuine conflicts resolved, where a
// conflict means two sources offered different values for one field.
func (m *merger) merge(claims map[properties.Key]map[sources.ID]properties.Candidate) ([]*properties.Definition, int) {
	keys := make([]properties.Key, 0, len(claims))
	for key := range claims {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, properties.Key.Compare)

	defs := make([]*properties.Definition, 0, len(keys))
	conflicts := 0
	for _, key := range keys {
		def, resolved := m.definition(key, claims[key])
		defs = append(defs, def)
		conflicts += resolved
	}
	return defs, conflicts
}

// definition merges all claims on one property key.
func (m *merger) definition(key properties.Key, bySource map[sources.ID]properties.Candidate) (*properties.Definition, int) {
	def := &properties.Definition{
		FormatIdentifier:   key.FormatIdentifier,
		PropertyIdentifier: key.PropertyIdentifier,
	}

	ids := make([]sources.ID, 0, len(bySource))
	for id := range bySource {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	conflicts := 0
	credited := make(map[string]bool)
	for _, field := range mergeFields {
		var claims []Claim
		for _, id := range ids {
			if value := fieldValue(bySource[id], field); value != "" {
				claims = append(claims, Claim{Source: id, Value: value})
			}
		}
		if len(claims) == 0 {
			continue
		}

		winner, reason := m.strategy.Resolve(field, claims)
		setField(def, field, winner.Value)
		credited[string(winner.Source)] = true
		if distinctValues(claims) > 1 {
			// A contested field keeps one canonical value, but every
			// claimant stays attributed.
			conflicts++
			for _, claim := range claims {
				credited[string(claim.Source)] = true
			}
		}
		m.track(key, field, claims, winner, reason)
	}

	def.Provenance = contributors(credited, ids)
	return def, conflicts
}

// contributors returns the definition's provenance set: sources whose
// claims won a field, plus every claimant of a contested field. When
// every field is empty, the claimants contributed the key itself.
func contributors(credited map[string]bool, claimants []sources.ID) []string {
	if len(credited) == 0 {
		tags := make([]string, len(claimants))
		for i, id := range claimants {
			tags[i] = string(id)
		}
		return tags
	}

	tags := make([]string, 0, len(credited))
	for tag := range credited {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// track records every claim on a field, winner first.
func (m *merger) track(key properties.Key, field string, claims []Claim, winner Claim, reason string) {
	records := make([]provenance.Record, 0, len(claims))
	records = append(records, provenance.Record{
		Source:   string(winner.Source),
		Field:    field,
		Value:    winner.Value,
		Reason:   reason,
		Selected: true,
	})
	for _, claim := range claims {
		if claim.Source == winner.Source {
			continue
		}
		records = append(records, provenance.Record{
			Source: string(claim.Source),
			Field:  field,
			Value:  claim.Value,
			Reason: "outranked by " + string(winner.Source),
		})
	}
	m.tracker.Track(key.String(), field, records...)
}

// distinctValues counts the distinct values among claims.
func distinctValues(claims []Claim) int {
	seen := make(map[string]bool, len(claims))
	for _, claim := range claims {
		seen[claim.Value] = true
	}
	return len(seen)
}

// fieldValue reads one mergeable field from a candidate.
func fieldValue(c properties.Candidate, field string) string {
	switch field {
	case "name":
		return c.Name
	case "shell_property_key":
		return c.ShellPropertyKey
	case "value_type":
		return c.ValueType
	case "format_class":
		return c.FormatClass
	case "alias":
		return c.Alias
	default:
		return ""
	}
}

// setField writes one mergeable field on a definition.
func setField(def *properties.Definition, field, value string) {
	switch field {
	case "name":
		def.Name = value
	case "shell_property_key":
		def.ShellPropertyKey = value
	case "value_type":
		def.ValueType = value
	case "format_class":
		def.FormatClass = value
	case "alias":
		def.Alias = value
	}
}
