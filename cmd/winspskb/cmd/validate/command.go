// Package validate provides the command that checks a knowledge base
// file for structural and semantic problems.
package validate

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/propstore/winspskb/internal/cmd/output"
	"github.com/propstore/winspskb/internal/embedded"
	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
)

// AppContext defines the interface the validate command needs from the
// app. This allows for better testability and decoupling from the full
// app.
type AppContext interface {
	Logger() *zerolog.Logger
	OutputFormat() string
}

// result is the structured validation outcome for json and yaml output.
type result struct {
	Target      string   `json:"target" yaml:"target"`
	Definitions int      `json:"definitions" yaml:"definitions"`
	Valid       bool     `json:"valid" yaml:"valid"`
	Issues      []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewCommand creates the validate command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Validate a knowledge base file",
		Long: `Validate decodes a knowledge base file strictly and checks every
definition: canonical identifier form, value type tags, and key
uniqueness across the whole file. The embedded knowledge base is
checked when no file is given.

The command exits non-zero when any issue is found.`,
		Example: `  winspskb validate
  winspskb validate --kb build/winsps.yaml
  winspskb validate --kb build/winsps.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("kb", "",
		"Knowledge base file to validate instead of the embedded one")

	return cmd
}

// run decodes the target, validates it, and reports the findings.
func run(cmd *cobra.Command, app AppContext) error {
	kbPath, _ := cmd.Flags().GetString("kb")

	data, target, err := readTarget(kbPath)
	if err != nil {
		return err
	}

	// Decoding to a flat list keeps duplicate keys visible; loading into
	// a knowledge base would silently collapse them before validation.
	var issues []error
	defs, err := properties.DecodeDefinitions(data)
	if err != nil {
		issues = append(issues, err)
	} else {
		issues = properties.Validate(defs)
	}

	res := result{
		Target:      target,
		Definitions: len(defs),
		Valid:       len(issues) == 0,
	}
	for _, issue := range issues {
		res.Issues = append(res.Issues, issue.Error())
	}

	if err := printResult(cmd, app, res); err != nil {
		return err
	}

	if !res.Valid {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s failed validation with %d issues", target, len(issues))
	}
	return nil
}

// readTarget returns the knowledge base bytes to validate and a label
// naming them.
func readTarget(kbPath string) ([]byte, string, error) {
	if kbPath != "" {
		data, err := os.ReadFile(kbPath)
		if err != nil {
			return nil, "", errors.WrapIO("read", kbPath, err)
		}
		return data, kbPath, nil
	}

	data, err := embedded.FS.ReadFile(constants.KnowledgeBaseFile)
	if err != nil {
		return nil, "", errors.WrapIO("read", constants.KnowledgeBaseFile, err)
	}
	return data, "embedded knowledge base", nil
}

// printResult renders the validation outcome in the configured format.
func printResult(cmd *cobra.Command, app AppContext, res result) error {
	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), res)
	}

	if res.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d definitions, no issues found\n",
			res.Target, res.Definitions)
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d issues\n", res.Target, len(res.Issues))
	for _, issue := range res.Issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", issue)
	}
	return nil
}
