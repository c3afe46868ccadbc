// Package list provides the command that lists knowledge base
// definitions.
package list

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/propstore/winspskb/internal/cmd/filter"
	"github.com/propstore/winspskb/internal/cmd/output"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
)

// AppContext defines the interface the list command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	OpenKnowledgeBase(path string) (properties.KnowledgeBase, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	Quiet() bool
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List property definitions",
		Long: `List prints knowledge base definitions in canonical key order. The
embedded knowledge base answers by default; --kb points the command at
a knowledge base file instead.

Filters narrow the listing: --guid keeps one property set,
--format-class keeps one format class, and --search keeps definitions
with the term anywhere in their key, name, shell property key, alias,
or format class.`,
		Example: `  winspskb list
  winspskb list --guid "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}"
  winspskb list --format-class FMTID_Storage -o wide
  winspskb list --search title --limit 10
  winspskb list --kb build/winsps.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("kb", "",
		"Knowledge base file to list instead of the embedded one")
	cmd.Flags().String("guid", "",
		"Keep definitions of one format identifier GUID")
	cmd.Flags().String("format-class", "",
		"Keep definitions of one format class")
	cmd.Flags().String("search", "",
		"Keep definitions matching a search term")
	cmd.Flags().Int("limit", 0,
		"Maximum number of definitions to print (0 means all)")

	return cmd
}

// run lists, filters, and prints definitions.
func run(cmd *cobra.Command, app AppContext) error {
	kbPath, _ := cmd.Flags().GetString("kb")
	guid, _ := cmd.Flags().GetString("guid")
	formatClass, _ := cmd.Flags().GetString("format-class")
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	if guid != "" {
		parsed, err := uuid.Parse(guid)
		if err != nil {
			return &errors.ValidationError{
				Field:   "guid",
				Value:   guid,
				Message: "not a valid GUID",
			}
		}
		guid = parsed.String()
	}

	kb, err := app.OpenKnowledgeBase(kbPath)
	if err != nil {
		return err
	}

	defFilter := &filter.DefinitionFilter{
		FormatIdentifier: guid,
		FormatClass:      formatClass,
		Search:           search,
	}
	defs := defFilter.Apply(kb.Definitions().List())

	if limit > 0 && len(defs) > limit {
		defs = defs[:limit]
	}

	if !app.Quiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d definitions\n", len(defs))
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Format(cmd.OutOrStdout(), defs)
	default:
		return formatter.Format(cmd.OutOrStdout(), output.DefinitionsToTableData(defs, format == output.FormatWide))
	}
}
