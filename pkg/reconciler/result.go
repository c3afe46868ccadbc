package reconciler

import (
	"fmt"
	"time"

	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/provenance"
	"github.com/propstore/winspskb/pkg/sources"
)

// Result is the outcome of a merge run.
type Result struct {
	// KnowledgeBase holds the merged definitions, frozen. On a failed
	// run it may be nil or carry definitions that did not validate;
	// check IsSuccess before persisting it.
	KnowledgeBase properties.KnowledgeBase

	// Provenance maps definition fields to the claims behind them.
	// Nil unless tracking was enabled.
	Provenance provenance.Map

	// Metadata describes the run.
	Metadata ResultMetadata

	// Errors collects validation failures of the merged output.
	Errors []error

	// Warnings collects non-fatal problems, such as unavailable sources.
	Warnings []string
}

// ResultMetadata contains metadata about the merge run.
type ResultMetadata struct {
	// StartTime when the merge started.
	StartTime time.Time

	// EndTime when the merge completed.
	EndTime time.Time

	// Duration of the merge.
	Duration time.Duration

	// Sources that answered, in load order.
	Sources []sources.ID

	// SourceStats describes each configured source's contribution.
	SourceStats map[sources.ID]SourceStat

	// Strategy used to resolve conflicts.
	Strategy StrategyType

	// Stats about the merge.
	Stats ResultStatistics
}

// SourceStat describes one source's part in a merge run.
type SourceStat struct {
	// Available is true when the source loaded.
	Available bool

	// Candidates is the number of usable records the source yielded.
	Candidates int

	// Dropped is the number of malformed records the loader skipped.
	Dropped int

	// Error holds the load failure for unavailable sources.
	Error string
}

// ResultStatistics contains statistics about the merge.
type ResultStatistics struct {
	CandidatesCollected int
	DefinitionsMerged   int
	ConflictsResolved   int
	RecordsDropped      int
	TotalTimeMs         int64
}

// NewResult creates a result with the clock already running.
func NewResult() *Result {
	return &Result{
		Errors:   []error{},
		Warnings: []string{},
		Metadata: ResultMetadata{
			StartTime:   time.Now(),
			Sources:     []sources.ID{},
			SourceStats: make(map[sources.ID]SourceStat),
		},
	}
}

// Finalize stamps the end time and computes the duration.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}

// IsSuccess returns true when the merged output validated cleanly.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.IsSuccess() {
		return fmt.Sprintf("Merge failed validation with %d errors", len(r.Errors))
	}

	summary := fmt.Sprintf("Merged %d definitions from %d sources",
		r.Metadata.Stats.DefinitionsMerged, len(r.Metadata.Sources))
	if r.Metadata.Stats.ConflictsResolved > 0 {
		summary += fmt.Sprintf(", resolved %d conflicts", r.Metadata.Stats.ConflictsResolved)
	}
	if r.Metadata.Stats.RecordsDropped > 0 {
		summary += fmt.Sprintf(", dropped %d malformed records", r.Metadata.Stats.RecordsDropped)
	}
	if len(r.Warnings) > 0 {
		summary += fmt.Sprintf(" (%d warnings)", len(r.Warnings))
	}
	return summary + "."
}
