// Package build provides the command that merges property record
// streams into a knowledge base and writes its artifacts.
package build

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/propstore/winspskb"
	"github.com/propstore/winspskb/pkg/constants"
)

// AppContext defines the interface the build command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	ClientWithOptions(opts ...winspskb.Option) (winspskb.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	Quiet() bool
	DefaultOutputDir() string
	DefaultPrecedence() string
	DefaultBaseline() string
}

// NewCommand creates the build command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build --source tag=path [--source tag=path ...]",
		GroupID: "core",
		Short:   "Merge source records into knowledge base artifacts",
		Long: `Build loads property metadata records from the given sources, merges
them into one canonical definition per property key, and writes the
knowledge base artifacts: the canonical YAML file and a self-contained
Go lookup source, plus markdown documentation when requested.

Each --source takes a tag=path pair where the tag names one of the
recognized sources: baseline, headers, docs, system, observed. A source
that cannot be read degrades the run with a warning; malformed records
inside a readable source are dropped and counted. When several sources
claim the same field, precedence decides which claim wins.

Rebuilding from the same inputs yields byte-identical artifacts.`,
		Example: `  winspskb build --source headers=data/headers.yaml --source docs=data/docs.yaml
  winspskb build --source system=sys.yaml --precedence system,observed --output build
  winspskb build --source observed=obs.yaml --baseline winsps.yaml --docs
  winspskb build --source headers=data/headers.yaml --provenance`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().StringArray("source", nil,
		"Source record stream as tag=path (repeatable)")
	cmd.Flags().String("precedence", app.DefaultPrecedence(),
		"Comma-separated source precedence, highest first")
	cmd.Flags().String("baseline", app.DefaultBaseline(),
		"Previously built knowledge base to merge on top of")
	cmd.Flags().String("output", app.DefaultOutputDir(),
		"Directory for generated artifacts")
	cmd.Flags().String("package", constants.GeneratedPackageName,
		"Package name of the generated lookup source")
	cmd.Flags().Bool("docs", false,
		"Also generate markdown documentation")
	cmd.Flags().Bool("provenance", false,
		"Print the field provenance report after the merge")

	return cmd
}
