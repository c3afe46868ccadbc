package reconciler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/reconciler"
	"github.com/propstore/winspskb/pkg/sources"
)

// writeSource writes a record stream and returns a source over it.
func writeSource(t *testing.T, dir string, id sources.ID, body string) sources.Source {
	t.Helper()
	path := filepath.Join(dir, string(id)+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return sources.New(id, path)
}

const summaryFID = "f29f85e0-4ff9-1068-ab91-08002b27b3d9"

func TestNewOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  reconciler.Option
	}{
		{"nil strategy", reconciler.WithStrategy(nil)},
		{"invalid precedence", reconciler.WithPrecedence(sources.Precedence{"web"})},
		{"empty ranks", reconciler.WithRanks(nil)},
		{"empty baseline path", reconciler.WithBaseline("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconciler.New(tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestMergeNoSources(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, errors.ErrNoSources)
}

func TestMergeAllSourcesFailed(t *testing.T) {
	r, err := reconciler.New()
	require.NoError(t, err)

	dir := t.TempDir()
	result, err := r.Merge(context.Background(),
		sources.New(sources.Docs, filepath.Join(dir, "missing1.yaml")),
		sources.New(sources.Headers, filepath.Join(dir, "missing2.yaml")),
	)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, errors.ErrAllSourcesFailed)
}

func TestMergeDegradesOnUnavailableSource(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nname: Title\n")
	missing := sources.New(sources.Headers, filepath.Join(dir, "absent.yaml"))

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), missing, docs)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.IsSuccess())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "headers")

	assert.Equal(t, []sources.ID{sources.Docs}, result.Metadata.Sources)
	assert.False(t, result.Metadata.SourceStats[sources.Headers].Available)
	assert.NotEmpty(t, result.Metadata.SourceStats[sources.Headers].Error)
	assert.True(t, result.Metadata.SourceStats[sources.Docs].Available)
	assert.Equal(t, 1, result.Metadata.SourceStats[sources.Docs].Candidates)

	assert.Equal(t, 1, result.KnowledgeBase.Len())
}

func TestMergeCanceledContext(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nname: Title\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(ctx, docs)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeBaselineConfiguredTwice(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.yaml")

	kb := properties.NewEmpty()
	require.NoError(t, kb.SetDefinition(&properties.Definition{
		FormatIdentifier:   summaryFID,
		PropertyIdentifier: 2,
		Name:               "Title",
	}))
	require.NoError(t, kb.Save(baseline))

	r, err := reconciler.New(reconciler.WithBaseline(baseline))
	require.NoError(t, err)

	_, err = r.Merge(context.Background(), sources.NewBaseline(baseline))
	var validationErr *errors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestMergeFieldPrecedence(t *testing.T) {
	dir := t.TempDir()
	headers := writeSource(t, dir, sources.Headers,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 8\nname: Last author\nshell_property_key: PKEY_LastAuthor\n")
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 8\nname: Last saved by\nalias: System.Document.LastAuthor\nvalue_type: VT_LPSTR\n")

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), docs, headers)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	def, err := result.KnowledgeBase.Definition(properties.Key{
		FormatIdentifier:   summaryFID,
		PropertyIdentifier: 8,
	})
	require.NoError(t, err)

	// Headers wins the contested name; docs still supplies the fields
	// headers never claimed.
	assert.Equal(t, "Last author", def.Name)
	assert.Equal(t, "PKEY_LastAuthor", def.ShellPropertyKey)
	assert.Equal(t, "System.Document.LastAuthor", def.Alias)
	assert.Equal(t, "VT_LPSTR", def.ValueType)
	assert.Equal(t, []string{"docs", "headers"}, def.Provenance)

	assert.Equal(t, 1, result.Metadata.Stats.ConflictsResolved)
	assert.Equal(t, 2, result.Metadata.Stats.CandidatesCollected)
	assert.Equal(t, 1, result.Metadata.Stats.DefinitionsMerged)

	// Provenance explains the contested field.
	records := result.Provenance["{"+summaryFID+"}/8:name"]
	require.Len(t, records, 2)
	assert.Equal(t, "headers", records[0].Source)
	assert.True(t, records[0].Selected)
}

func TestMergeCustomPrecedence(t *testing.T) {
	dir := t.TempDir()
	headers := writeSource(t, dir, sources.Headers,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 8\nname: Last author\n")
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 8\nname: Last saved by\n")

	// Inverted policy: docs outranks headers.
	r, err := reconciler.New(reconciler.WithPrecedence(
		sources.Precedence{sources.Docs, sources.Headers},
	))
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), headers, docs)
	require.NoError(t, err)

	def, err := result.KnowledgeBase.Definition(properties.Key{
		FormatIdentifier:   summaryFID,
		PropertyIdentifier: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Last saved by", def.Name)
}

func TestMergeResultIsFrozen(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nname: Title\n")

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), docs)
	require.NoError(t, err)

	err = result.KnowledgeBase.SetDefinition(&properties.Definition{
		FormatIdentifier:   summaryFID,
		PropertyIdentifier: 3,
	})
	assert.ErrorIs(t, err, errors.ErrReadOnly)
}

func TestMergeProvenanceDisabled(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nname: Title\n")

	r, err := reconciler.New(reconciler.WithProvenance(false))
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), docs)
	require.NoError(t, err)
	assert.Nil(t, result.Provenance)

	// The definition still records its contributing sources.
	def, err := result.KnowledgeBase.Definition(properties.Key{
		FormatIdentifier:   summaryFID,
		PropertyIdentifier: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, def.Provenance)
}

func TestMergeValidationFailure(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nvalue_type: VT_LPSTR;\n")

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), docs)
	require.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Summary(), "failed validation")
}

func TestMergeSummary(t *testing.T) {
	dir := t.TempDir()
	docs := writeSource(t, dir, sources.Docs,
		"---\nformat_identifier: "+summaryFID+"\nproperty_identifier: 2\nname: Title\n")

	r, err := reconciler.New()
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), docs)
	require.NoError(t, err)
	assert.Contains(t, result.Summary(), "Merged 1 definitions from 1 sources")
	assert.Equal(t, reconciler.StrategyTypeSourceOrder, result.Metadata.Strategy)
	assert.False(t, result.Metadata.EndTime.IsZero())
	assert.GreaterOrEqual(t, result.Metadata.Duration, result.Metadata.EndTime.Sub(result.Metadata.EndTime))
}
