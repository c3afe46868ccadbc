// Package docs provides the command that generates markdown
// documentation from a knowledge base.
package docs

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	docsgen "github.com/propstore/winspskb/internal/docs"
	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/properties"
)

// AppContext defines the interface the docs command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	OpenKnowledgeBase(path string) (properties.KnowledgeBase, error)
	Logger() *zerolog.Logger
	Quiet() bool
}

// NewCommand creates the docs command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "management",
		Short:   "Generate markdown documentation",
		Long: `Docs renders a knowledge base as markdown: an index page grouping
properties by format class and one page per format identifier GUID with
its property table. The embedded knowledge base is rendered when no
file is given.

Pages are pure functions of the knowledge base contents, so rendering
the same definitions always yields byte-identical files.`,
		Example: `  winspskb docs
  winspskb docs --output ./documentation
  winspskb docs --kb build/winsps.yaml --output build/docs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("output", constants.DocsDir,
		"Output directory for generated documentation")
	cmd.Flags().String("kb", "",
		"Knowledge base file to document instead of the embedded one")

	return cmd
}

// run opens the knowledge base and renders its documentation.
func run(cmd *cobra.Command, app AppContext) error {
	outputDir, _ := cmd.Flags().GetString("output")
	kbPath, _ := cmd.Flags().GetString("kb")

	kb, err := app.OpenKnowledgeBase(kbPath)
	if err != nil {
		return err
	}

	if err := docsgen.New(docsgen.WithOutputDir(outputDir)).Generate(cmd.Context(), kb); err != nil {
		return err
	}

	if !app.Quiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote documentation to %s\n", outputDir)
	}
	return nil
}
