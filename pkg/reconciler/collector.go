package reconciler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/sources"
)

// collector loads every source and groups the candidates by property
// key and source.
type collector struct {
	sources []sources.Source
	logger  *zerolog.Logger
}

// newCollector creates a collector over the given sources.
func newCollector(srcs []sources.Source) *collector {
	return &collector{
		sources: srcs,
		logger:  logging.Default(),
	}
}

// collection is everything gathered from the sources: claims grouped by
// key, per-source statistics, and the warnings produced on the way.
type collection struct {
	claims   map[properties.Key]map[sources.ID]properties.Candidate
	stats    map[sources.ID]SourceStat
	loaded   []sources.ID
	warnings []string
}

// candidates returns the total number of candidates collected.
func (c *collection) candidates() int {
	total := 0
	for _, stat := range c.stats {
		total += stat.Candidates
	}
	return total
}

// dropped returns the total number of records dropped by loaders.
func (c *collection) dropped() int {
	total := 0
	for _, stat := range c.stats {
		total += stat.Dropped
	}
	return total
}

// collect loads all sources in order. An unavailable source degrades
// the run with a warning; only cancellation or losing every source
// aborts it. Within one source a later claim on a key replaces an
// earlier one, matching record stream semantics.
func (c *collector) collect(ctx context.Context) (*collection, error) {
	col := &collection{
		claims: make(map[properties.Key]map[sources.ID]properties.Candidate),
		stats:  make(map[sources.ID]SourceStat, len(c.sources)),
	}

	for _, src := range c.sources {
		extract, err := src.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			col.stats[src.ID()] = SourceStat{Error: err.Error()}
			col.warnings = append(col.warnings,
				fmt.Sprintf("source %s unavailable: %v", src.ID(), err))
			c.logger.Warn().
				Err(err).
				Str("source", string(src.ID())).
				Msg("Source unavailable, continuing without it")
			continue
		}

		for _, candidate := range extract.Candidates {
			key := candidate.Key()
			if col.claims[key] == nil {
				col.claims[key] = make(map[sources.ID]properties.Candidate)
			}
			col.claims[key][src.ID()] = candidate
		}

		col.stats[src.ID()] = SourceStat{
			Available:  true,
			Candidates: len(extract.Candidates),
			Dropped:    len(extract.Dropped),
		}
		col.loaded = append(col.loaded, src.ID())

		c.logger.Debug().
			Str("source", string(src.ID())).
			Int("candidates", len(extract.Candidates)).
			Int("dropped", len(extract.Dropped)).
			Msg("Collected source")
	}

	if len(col.loaded) == 0 {
		return nil, errors.ErrAllSourcesFailed
	}
	return col, nil
}
