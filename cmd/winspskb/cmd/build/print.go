package build

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propstore/winspskb/internal/cmd/output"
	"github.com/propstore/winspskb/pkg/reconciler"
	"github.com/propstore/winspskb/pkg/sources"
)

// report is the structured run summary for json and yaml output.
type report struct {
	Summary   string         `json:"summary" yaml:"summary"`
	Stats     runStats       `json:"stats" yaml:"stats"`
	Sources   []sourceReport `json:"sources" yaml:"sources"`
	Artifacts []string       `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Errors    []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings  []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type runStats struct {
	CandidatesCollected int   `json:"candidates_collected" yaml:"candidates_collected"`
	DefinitionsMerged   int   `json:"definitions_merged" yaml:"definitions_merged"`
	ConflictsResolved   int   `json:"conflicts_resolved" yaml:"conflicts_resolved"`
	RecordsDropped      int   `json:"records_dropped" yaml:"records_dropped"`
	TotalTimeMs         int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

type sourceReport struct {
	Source     string `json:"source" yaml:"source"`
	Available  bool   `json:"available" yaml:"available"`
	Candidates int    `json:"candidates" yaml:"candidates"`
	Dropped    int    `json:"dropped" yaml:"dropped"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// newReport flattens a merge result for structured output. Source rows
// keep command-line order.
func newReport(result *reconciler.Result, order []sources.ID, artifacts []string) report {
	stats := result.Metadata.Stats
	r := report{
		Summary: result.Summary(),
		Stats: runStats{
			CandidatesCollected: stats.CandidatesCollected,
			DefinitionsMerged:   stats.DefinitionsMerged,
			ConflictsResolved:   stats.ConflictsResolved,
			RecordsDropped:      stats.RecordsDropped,
			TotalTimeMs:         stats.TotalTimeMs,
		},
		Artifacts: artifacts,
		Warnings:  result.Warnings,
	}

	for _, id := range order {
		stat, ok := result.Metadata.SourceStats[id]
		if !ok {
			continue
		}
		r.Sources = append(r.Sources, sourceReport{
			Source:     string(id),
			Available:  stat.Available,
			Candidates: stat.Candidates,
			Dropped:    stat.Dropped,
			Error:      stat.Error,
		})
	}

	for _, err := range result.Errors {
		r.Errors = append(r.Errors, err.Error())
	}

	return r
}

// printResult reports a successful run: structured formats get the full
// report, table mode gets the summary, per-source statistics, and the
// written artifact paths.
func printResult(cmd *cobra.Command, app AppContext, result *reconciler.Result, order []sources.ID, artifacts []string) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	out := cmd.OutOrStdout()

	if format == output.FormatJSON || format == output.FormatYAML {
		return formatter.Format(out, newReport(result, order, artifacts))
	}

	if !app.Quiet() {
		fmt.Fprintln(out, result.Summary())
		fmt.Fprintln(out)
		if err := formatter.Format(out, output.SourceStatsToTableData(order, result.Metadata.SourceStats)); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	for _, path := range artifacts {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}

// printFailure reports a merge whose output failed validation. No
// artifacts are written on this path. The returned error carries the
// failure out to the exit code.
func printFailure(cmd *cobra.Command, app AppContext, result *reconciler.Result) error {
	format := output.DetectFormat(app.OutputFormat())

	if format == output.FormatJSON || format == output.FormatYAML {
		formatter := output.NewFormatter(format)
		if err := formatter.Format(cmd.OutOrStdout(), newReport(result, result.Metadata.Sources, nil)); err != nil {
			return err
		}
	} else {
		for _, issue := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", issue)
		}
	}

	return fmt.Errorf("merged knowledge base failed validation with %d errors", len(result.Errors))
}
