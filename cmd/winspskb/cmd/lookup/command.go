// Package lookup provides the command that resolves one property key
// against a knowledge base.
package lookup

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/propstore/winspskb/internal/cmd/output"
	"github.com/propstore/winspskb/pkg/properties"
)

// AppContext defines the interface the lookup command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	OpenKnowledgeBase(path string) (properties.KnowledgeBase, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the lookup command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookup <key> | <format-identifier> <property-identifier>",
		GroupID: "core",
		Short:   "Look up one property definition by key",
		Args:    cobra.RangeArgs(1, 2),
		Long: `Lookup resolves a property key to its definition. The key is a format
identifier GUID plus a decimal property identifier, given either as one
argument in lookup form or as two separate arguments. Braces around the
GUID are optional and its case does not matter.

By default the embedded knowledge base answers the lookup; --kb points
it at a knowledge base file instead.`,
		Example: `  winspskb lookup "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2"
  winspskb lookup f29f85e0-4ff9-1068-ab91-08002b27b3d9 2
  winspskb lookup --kb build/winsps.yaml b725f130-47ef-101a-a5f1-02608c9eebac 14 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	cmd.Flags().String("kb", "",
		"Knowledge base file to query instead of the embedded one")

	return cmd
}

// run parses the key, opens the knowledge base, and prints the answer.
func run(cmd *cobra.Command, app AppContext, args []string) error {
	key, err := parseKeyArgs(args)
	if err != nil {
		return err
	}

	kbPath, _ := cmd.Flags().GetString("kb")
	kb, err := app.OpenKnowledgeBase(kbPath)
	if err != nil {
		return err
	}

	def, err := kb.Definition(key)
	if err != nil {
		// A miss is an answer, not a usage mistake.
		cmd.SilenceUsage = true
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format == output.FormatJSON || format == output.FormatYAML {
		return formatter.Format(cmd.OutOrStdout(), def)
	}
	return formatter.Format(cmd.OutOrStdout(), output.DefinitionToTableData(def))
}

// parseKeyArgs accepts the combined "{guid}/pid" form or the guid and
// pid as two arguments. Both go through the same canonicalizing parser.
func parseKeyArgs(args []string) (properties.Key, error) {
	if len(args) == 1 {
		return properties.ParseKey(args[0])
	}
	return properties.ParseKey(strings.TrimSpace(args[0]) + "/" + strings.TrimSpace(args[1]))
}
