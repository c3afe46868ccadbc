// Package sources defines the recognized knowledge base sources and the
// loaders that read their record streams. A source yields candidate
// entries for the merge engine: records are decoded one document at a
// time, normalized, and the malformed ones are dropped and counted
// rather than failing the load.
//
// The package also carries the precedence policy: the configurable
// ranking that decides which source wins a field when several sources
// claim the same property key.
//
// Example usage:
//
//	// Create a file-backed source for scraped documentation records
//	src := sources.New(sources.Docs, "data/docs_properties.yaml")
//
//	// Load its candidates
//	extract, err := src.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d candidates, %d dropped\n",
//	    len(extract.Candidates), len(extract.Dropped))
package sources

import (
	"context"
	"slices"

	"github.com/propstore/winspskb/pkg/normalize"
	"github.com/propstore/winspskb/pkg/properties"
)

// ID identifies one of the recognized knowledge base sources.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// The recognized sources.
const (
	// Baseline re-ingests a previously persisted knowledge base.
	Baseline ID = "baseline"

	// Headers carries constants extracted from SDK header files.
	Headers ID = "headers"

	// Docs carries records scraped from published documentation.
	Docs ID = "docs"

	// System carries records from generated system property tables.
	System ID = "system"

	// Observed carries properties observed in the wild, including
	// third-party properties with no published definition.
	Observed ID = "observed"
)

// IDs returns all recognized source IDs in default precedence order.
func IDs() []ID {
	return []ID{
		Baseline,
		Headers,
		Docs,
		System,
		Observed,
	}
}

// IsValid returns true if the ID is one of the recognized sources.
// Uses IDs() to ensure consistency with the authoritative id list.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source yields candidate entries from one record stream.
type Source interface {
	// ID returns the source's identifier.
	ID() ID

	// Load reads the source's record stream and returns its extract.
	// Load re-reads the backing data on every call; there is no hidden
	// cursor, so a load can be repeated.
	Load(ctx context.Context) (*Extract, error)
}

// Extract is the outcome of loading one source: the usable candidates
// plus a record of everything dropped along the way.
type Extract struct {
	// Source is the ID of the source that produced this extract.
	Source ID `json:"source"`

	// Candidates holds the normalized entries in stream order.
	Candidates []properties.Candidate `json:"candidates"`

	// Dropped records the positions and causes of skipped records.
	Dropped []Drop `json:"dropped,omitempty"`
}

// Drop is one skipped record: its 1-based position within the source
// stream and the error that disqualified it.
type Drop struct {
	Record int   `json:"record"`
	Err    error `json:"error"`
}

// Rules returns the default cleanup rules for a source. Scraped and
// generated streams decorate text differently, so each source gets its
// own rule set; loaders accept overrides through WithRules.
func Rules(id ID) normalize.Rules {
	switch id {
	case Docs:
		// Scraped documentation carries non-breaking spaces and
		// parenthetical qualifiers, and is the only source of aliases.
		return normalize.Rules{
			CollapseWhitespace:  true,
			StripParentheticals: true,
			AliasPrefixes:       []string{"System.", "Microsoft."},
		}
	case Headers:
		return normalize.Rules{CollapseWhitespace: true}
	case System:
		return normalize.Rules{
			CollapseWhitespace:  true,
			StripParentheticals: true,
		}
	default:
		// Observed and baseline records are machine-generated.
		return normalize.Rules{}
	}
}
