package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propstore/winspskb"
	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/generator"
	"github.com/propstore/winspskb/pkg/provenance"
	"github.com/propstore/winspskb/pkg/sources"
)

// run executes the full build flow: parse sources, merge, generate
// artifacts, report.
func run(cmd *cobra.Command, app AppContext) error {
	specs, _ := cmd.Flags().GetStringArray("source")
	precedenceText, _ := cmd.Flags().GetString("precedence")
	baselinePath, _ := cmd.Flags().GetString("baseline")
	outputDir, _ := cmd.Flags().GetString("output")
	pkgName, _ := cmd.Flags().GetString("package")
	withDocs, _ := cmd.Flags().GetBool("docs")
	showProvenance, _ := cmd.Flags().GetBool("provenance")

	if len(specs) == 0 && baselinePath == "" {
		return &errors.ValidationError{
			Field:   "source",
			Message: "at least one --source or a --baseline is required",
		}
	}

	srcs, order, err := parseSources(specs)
	if err != nil {
		return err
	}
	if baselinePath != "" {
		order = append([]sources.ID{sources.Baseline}, order...)
	}

	opts, err := clientOptions(precedenceText, baselinePath, showProvenance)
	if err != nil {
		return err
	}
	client, err := app.ClientWithOptions(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.BuildTimeout)
	defer cancel()

	result, err := client.Merge(ctx, srcs...)
	if err != nil {
		return err
	}

	if !result.IsSuccess() {
		// The merge itself worked; the merged output is what failed.
		cmd.SilenceUsage = true
		return printFailure(cmd, app, result)
	}

	gen, err := generator.New(result.KnowledgeBase, generatorOptions(outputDir, pkgName, withDocs)...)
	if err != nil {
		return err
	}
	written, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	if showProvenance {
		cmd.Print(provenance.GenerateReport(result.Provenance).String())
	}

	return printResult(cmd, app, result, order, written)
}

// parseSources turns tag=path pairs into a registry of source loaders,
// preserving the order given on the command line.
func parseSources(specs []string) ([]sources.Source, []sources.ID, error) {
	registry := sources.NewRegistry()
	order := make([]sources.ID, 0, len(specs))

	for _, spec := range specs {
		tag, path, ok := strings.Cut(spec, "=")
		tag = strings.TrimSpace(tag)
		path = strings.TrimSpace(path)
		if !ok || tag == "" || path == "" {
			return nil, nil, &errors.ValidationError{
				Field:   "source",
				Value:   spec,
				Message: "expected tag=path",
			}
		}

		id := sources.ID(strings.ToLower(tag))
		if !id.IsValid() {
			return nil, nil, &errors.ValidationError{
				Field:   "source",
				Value:   tag,
				Message: fmt.Sprintf("unknown source tag (use one of: %s)", knownTags()),
			}
		}
		if _, exists := registry.Get(id); exists {
			return nil, nil, &errors.ValidationError{
				Field:   "source",
				Value:   string(id),
				Message: "listed more than once",
			}
		}

		if id == sources.Baseline {
			registry.Set(sources.NewBaseline(path))
		} else {
			registry.Set(sources.New(id, path))
		}
		order = append(order, id)
	}

	srcs := make([]sources.Source, 0, registry.Len())
	for _, id := range order {
		src, _ := registry.Get(id)
		srcs = append(srcs, src)
	}
	return srcs, order, nil
}

// clientOptions builds the client options from the command flags.
func clientOptions(precedenceText, baselinePath string, tracking bool) ([]winspskb.Option, error) {
	opts := []winspskb.Option{winspskb.WithProvenance(tracking)}

	if precedenceText != "" {
		precedence, err := sources.ParsePrecedence(precedenceText)
		if err != nil {
			return nil, err
		}
		opts = append(opts, winspskb.WithPrecedence(precedence))
	}
	if baselinePath != "" {
		opts = append(opts, winspskb.WithBaseline(baselinePath))
	}

	return opts, nil
}

// generatorOptions builds the generator options from the command flags.
func generatorOptions(outputDir, pkgName string, withDocs bool) []generator.Option {
	opts := []generator.Option{
		generator.WithOutputDir(outputDir),
		generator.WithPackageName(pkgName),
	}
	if withDocs {
		opts = append(opts, generator.WithDocs())
	}
	return opts
}

// knownTags lists the recognized source tags for error messages.
func knownTags() string {
	ids := sources.IDs()
	tags := make([]string, len(ids))
	for i, id := range ids {
		tags[i] = string(id)
	}
	return strings.Join(tags, ", ")
}
