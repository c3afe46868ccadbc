// Package generator writes the knowledge base artifacts: the canonical
// YAML file, a self-contained Go lookup source, and optionally markdown
// documentation. All artifacts are pure functions of the knowledge base
// contents, so regenerating from the same definitions yields
// byte-identical files.
package generator

import (
	"context"
	"go/token"
	"os"
	"path/filepath"

	"github.com/propstore/winspskb/internal/docs"
	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
)

// Generator writes knowledge base artifacts to an output directory.
type Generator struct {
	kb        properties.KnowledgeBase
	outputDir string
	pkgName   string
	docs      bool
}

// Option is a functional option for configuring the Generator
type Option func(*Generator) error

// WithOutputDir sets the directory artifacts are written to.
// Defaults to the current directory.
func WithOutputDir(dir string) Option {
	return func(g *Generator) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "output dir",
				Message: "cannot be empty",
			}
		}
		g.outputDir = dir
		return nil
	}
}

// WithPackageName sets the package name of the generated Go lookup
// source. Defaults to "propdefs".
func WithPackageName(name string) Option {
	return func(g *Generator) error {
		if !token.IsIdentifier(name) {
			return &errors.ValidationError{
				Field:   "package name",
				Value:   name,
				Message: "must be a valid Go identifier",
			}
		}
		g.pkgName = name
		return nil
	}
}

// WithDocs enables markdown documentation generation under
// <output dir>/docs.
func WithDocs() Option {
	return func(g *Generator) error {
		g.docs = true
		return nil
	}
}

// New creates a generator over a knowledge base.
func New(kb properties.KnowledgeBase, opts ...Option) (*Generator, error) {
	if kb == nil {
		return nil, &errors.ValidationError{
			Field:   "knowledge base",
			Message: "cannot be nil",
		}
	}

	g := &Generator{
		kb:        kb,
		outputDir: constants.DefaultOutputDir,
		pkgName:   constants.GeneratedPackageName,
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Generate writes all configured artifacts and returns the paths
// written, in write order.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outputDir, constants.DirPermissions); err != nil {
		return nil, errors.NewGenerationError("artifacts", g.outputDir, err)
	}

	written := make([]string, 0, 3)

	path, err := g.writeKnowledgeBase()
	if err != nil {
		return written, err
	}
	written = append(written, path)

	if err := ctx.Err(); err != nil {
		return written, err
	}

	path, err = g.writeLookupSource()
	if err != nil {
		return written, err
	}
	written = append(written, path)

	if g.docs {
		docsDir := filepath.Join(g.outputDir, constants.DocsDir)
		if err := docs.New(docs.WithOutputDir(docsDir)).Generate(ctx, g.kb); err != nil {
			return written, err
		}
		written = append(written, docsDir)
	}

	logging.Debug().
		Str("dir", g.outputDir).
		Strs("artifacts", written).
		Msg("Generated knowledge base artifacts")

	return written, nil
}

// writeKnowledgeBase writes the canonical YAML knowledge base file.
func (g *Generator) writeKnowledgeBase() (string, error) {
	path := filepath.Join(g.outputDir, constants.KnowledgeBaseFile)

	data, err := properties.EncodeDefinitions(g.kb.Definitions().List())
	if err != nil {
		return "", errors.NewGenerationError("knowledge base", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.NewGenerationError("knowledge base", path, err)
	}
	return path, nil
}
