package sources

import (
	"context"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
)

// baselineSource re-ingests a previously persisted knowledge base so a
// merge can build on earlier output instead of starting from scratch.
type baselineSource struct {
	path string
}

// Compile-time check that baselineSource implements the Source interface.
var _ Source = (*baselineSource)(nil)

// NewBaseline returns a source that loads a persisted knowledge base
// file. Unlike raw record streams, the baseline went through
// validation before it was written, so it is decoded strictly: any
// malformed document makes the whole source unavailable.
func NewBaseline(path string) Source {
	return &baselineSource{path: path}
}

// ID returns the baseline source identifier.
func (s *baselineSource) ID() ID {
	return Baseline
}

// Load reads the persisted knowledge base and converts every
// definition back into a candidate.
func (s *baselineSource) Load(ctx context.Context) (*Extract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kb, err := properties.NewFromPath(s.path)
	if err != nil {
		return nil, &errors.SourceUnavailableError{
			Source: string(Baseline),
			Path:   s.path,
			Err:    err,
		}
	}

	extract := &Extract{
		Source:     Baseline,
		Candidates: make([]properties.Candidate, 0, kb.Len()),
	}
	for def := range kb.All() {
		extract.Candidates = append(extract.Candidates, def.Candidate())
	}

	logging.Debug().
		Str("source", string(Baseline)).
		Str("path", s.path).
		Int("candidates", len(extract.Candidates)).
		Msg("Loaded baseline knowledge base")

	return extract, nil
}
