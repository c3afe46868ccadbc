// Package reconciler merges property candidates from multiple sources
// into a single knowledge base. Each field of each property key is
// resolved independently by the configured strategy, conflicts are
// recorded as provenance, and the merged output is validated and frozen
// before it is returned.
package reconciler

import (
	"context"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/provenance"
	"github.com/propstore/winspskb/pkg/sources"
)

// Reconciler merges candidates from multiple sources.
type Reconciler interface {
	// Merge loads the given sources, resolves every claimed property
	// key, and returns the merged result. Unavailable sources degrade
	// the run; losing all of them aborts it.
	Merge(ctx context.Context, srcs ...sources.Source) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	strategy     Strategy
	tracking     bool
	baselinePath string
}

// New creates a Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		strategy:     options.strategy,
		tracking:     options.tracking,
		baselinePath: options.baselinePath,
	}, nil
}

// Merge performs the full collect, resolve, validate, freeze flow.
func (r *reconciler) Merge(ctx context.Context, srcs ...sources.Source) (*Result, error) {
	srcs, err := r.withBaseline(srcs)
	if err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, errors.ErrNoSources
	}

	logger := logging.FromContext(ctx)
	result := NewResult()
	result.Metadata.Strategy = r.strategy.Type()

	collected, err := newCollector(srcs).collect(ctx)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, collected.warnings...)
	result.Metadata.Sources = collected.loaded
	result.Metadata.SourceStats = collected.stats

	tracker := provenance.NewTracker(r.tracking)
	defs, conflicts := newMerger(r.strategy, tracker).merge(collected.claims)

	logger.Info().
		Int("definitions", len(defs)).
		Int("conflicts", conflicts).
		Int("sources", len(collected.loaded)).
		Msg("Merged definitions")

	// The merged output must satisfy the same validation a hand-written
	// knowledge base would.
	result.Errors = append(result.Errors, properties.Validate(defs)...)

	kb, err := r.knowledgeBase(defs)
	if err != nil {
		return nil, err
	}
	result.KnowledgeBase = kb
	result.Provenance = tracker.Map()

	result.Metadata.Stats = ResultStatistics{
		CandidatesCollected: collected.candidates(),
		DefinitionsMerged:   len(defs),
		ConflictsResolved:   conflicts,
		RecordsDropped:      collected.dropped(),
	}
	result.Finalize()

	return result, nil
}

// withBaseline prepends the configured baseline source, if any. The
// baseline must not also appear in the explicit source list.
func (r *reconciler) withBaseline(srcs []sources.Source) ([]sources.Source, error) {
	if r.baselinePath == "" {
		return srcs, nil
	}
	for _, src := range srcs {
		if src.ID() == sources.Baseline {
			return nil, &errors.ValidationError{
				Field:   "baseline",
				Message: "configured twice",
			}
		}
	}
	return append([]sources.Source{sources.NewBaseline(r.baselinePath)}, srcs...), nil
}

// knowledgeBase assembles and freezes the merged definitions.
func (r *reconciler) knowledgeBase(defs []*properties.Definition) (properties.KnowledgeBase, error) {
	kb := properties.NewEmpty()
	for _, def := range defs {
		if err := kb.SetDefinition(def); err != nil {
			return nil, err
		}
	}
	kb.Freeze()
	return kb, nil
}
