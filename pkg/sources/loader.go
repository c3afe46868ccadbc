package sources

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/normalize"
)

// Option configures a file-backed source.
type Option func(*fileSource)

// WithRules overrides the source's default cleanup rules.
func WithRules(rules normalize.Rules) Option {
	return func(s *fileSource) {
		s.rules = rules
	}
}

// WithRecordLimit overrides the cap on records accepted from the
// source. The default is constants.MaxSourceRecords.
func WithRecordLimit(limit int) Option {
	return func(s *fileSource) {
		s.limit = limit
	}
}

// fileSource reads a YAML record stream from disk.
type fileSource struct {
	id    ID
	path  string
	rules normalize.Rules
	limit int
}

// Compile-time check that fileSource implements the Source interface.
var _ Source = (*fileSource)(nil)

// New returns a file-backed source for the given ID and path. The
// source uses the default cleanup rules for its ID unless overridden.
func New(id ID, path string, opts ...Option) Source {
	s := &fileSource{
		id:    id,
		path:  path,
		rules: Rules(id),
		limit: constants.MaxSourceRecords,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ID returns the source's identifier.
func (s *fileSource) ID() ID {
	return s.id
}

// Load reads the record stream and returns an extract. An unreadable
// file or a stream over the record cap makes the whole source
// unavailable; a malformed record only drops that record, so one bad
// entry never poisons the stream.
func (s *fileSource) Load(ctx context.Context) (*Extract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &errors.SourceUnavailableError{
			Source: string(s.id),
			Path:   s.path,
			Err:    err,
		}
	}

	extract := &Extract{Source: s.id}
	record := 0
	for _, doc := range splitDocuments(data) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if emptyDocument(doc) {
			continue
		}
		record++
		if record > s.limit {
			return nil, &errors.SourceUnavailableError{
				Source: string(s.id),
				Path:   s.path,
				Err:    fmt.Errorf("stream exceeds the %d record limit", s.limit),
			}
		}

		var raw normalize.Raw
		if err := yaml.UnmarshalWithOptions(doc, &raw, yaml.DisallowUnknownField()); err != nil {
			extract.drop(record, &errors.ParseError{
				Format:  "yaml",
				Message: fmt.Sprintf("record %d: %v", record, err),
				Err:     err,
			})
			continue
		}

		candidate, err := normalize.Candidate(raw, s.rules)
		if err != nil {
			extract.drop(record, stamp(err, s.id))
			continue
		}
		extract.Candidates = append(extract.Candidates, candidate)
	}

	logging.Debug().
		Str("source", string(s.id)).
		Str("path", s.path).
		Int("candidates", len(extract.Candidates)).
		Int("dropped", len(extract.Dropped)).
		Msg("Loaded source records")

	return extract, nil
}

// drop records one skipped record and logs it at debug level.
func (e *Extract) drop(record int, err error) {
	e.Dropped = append(e.Dropped, Drop{Record: record, Err: err})
	logging.Debug().
		Str("source", string(e.Source)).
		Int("record", record).
		Err(err).
		Msg("Dropped malformed record")
}

// stamp annotates a normalization error with the source it came from.
func stamp(err error, id ID) error {
	var malformed *errors.MalformedIdentifierError
	if errors.As(err, &malformed) && malformed.Source == "" {
		malformed.Source = string(id)
	}
	return err
}

// splitDocuments splits a record stream into YAML documents. A line
// consisting of "---" (ignoring surrounding whitespace) is a document
// boundary; everything between boundaries is one document, including
// any prelude before the first separator.
func splitDocuments(data []byte) [][]byte {
	var docs [][]byte
	var lines [][]byte

	// Lines keep their trailing newline, so documents are rebuilt by
	// concatenation.
	flush := func() {
		if len(lines) == 0 {
			return
		}
		docs = append(docs, bytes.Join(lines, nil))
		lines = nil
	}

	for line := range bytes.Lines(data) {
		if bytes.Equal(bytes.TrimSpace(line), []byte("---")) {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()

	return docs
}

// emptyDocument reports whether a document holds only comments and
// blank lines. Such documents are stream furniture, not records, and
// are skipped without counting as drops.
func emptyDocument(doc []byte) bool {
	for line := range bytes.Lines(doc) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		return false
	}
	return true
}
