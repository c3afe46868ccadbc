// Package docs generates markdown documentation for a property
// knowledge base: an index page plus one page per format identifier
// with a table of its properties.
package docs

import (
	"context"
	"os"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
)

// Generator handles documentation generation
type Generator struct {
	outputDir string
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithOutputDir sets the output directory for generated documentation
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{
		outputDir: constants.DocsDir,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate writes the documentation for the knowledge base: index.md
// plus one <format identifier>.md page per property set. Output is a
// pure function of the knowledge base contents, so regenerating from
// the same definitions yields byte-identical files.
func (g *Generator) Generate(ctx context.Context, kb properties.KnowledgeBase) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(g.outputDir, constants.DirPermissions); err != nil {
		return errors.NewGenerationError("docs", g.outputDir, err)
	}

	sets := propertySets(kb)

	if err := g.writeIndex(sets); err != nil {
		return err
	}

	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.writePropertySet(set); err != nil {
			return err
		}
	}

	logging.Debug().
		Str("dir", g.outputDir).
		Int("property_sets", len(sets)).
		Msg("Generated documentation")

	return nil
}

// propertySet is one format identifier's slice of the knowledge base.
type propertySet struct {
	FormatIdentifier string
	FormatClass      string
	Definitions      []*properties.Definition
}

// propertySets groups definitions by format identifier, preserving the
// canonical (format identifier, property identifier) order. The set's
// class is the first non-empty format class among its members.
func propertySets(kb properties.KnowledgeBase) []propertySet {
	var sets []propertySet

	for _, def := range kb.Definitions().List() {
		if len(sets) == 0 || sets[len(sets)-1].FormatIdentifier != def.FormatIdentifier {
			sets = append(sets, propertySet{FormatIdentifier: def.FormatIdentifier})
		}

		set := &sets[len(sets)-1]
		if set.FormatClass == "" {
			set.FormatClass = def.FormatClass
		}
		set.Definitions = append(set.Definitions, def)
	}

	return sets
}
