package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/generator"
	"github.com/propstore/winspskb/pkg/properties"
)

const (
	summaryFID = "f29f85e0-4ff9-1068-ab91-08002b27b3d9"
	storageFID = "b725f130-47ef-101a-a5f1-02608c9eebac"
)

func testKnowledgeBase(t *testing.T) properties.KnowledgeBase {
	t.Helper()

	kb, err := properties.New(properties.WithDefinitions(
		&properties.Definition{
			FormatIdentifier:   summaryFID,
			PropertyIdentifier: 2,
			Name:               "Title",
			ShellPropertyKey:   "PKEY_Title",
			ValueType:          "VT_LPSTR",
			FormatClass:        "FMTID_SummaryInformation",
			Alias:              "System.Title",
		},
		&properties.Definition{
			FormatIdentifier:   storageFID,
			PropertyIdentifier: 10,
			Name:               "Name",
			ShellPropertyKey:   "PKEY_ItemNameDisplay",
		},
	))
	require.NoError(t, err)
	return kb
}

func readArtifact(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestNewValidation(t *testing.T) {
	kb := testKnowledgeBase(t)

	tests := []struct {
		name string
		kb   properties.KnowledgeBase
		opts []generator.Option
	}{
		{
			name: "nil knowledge base",
			kb:   nil,
		},
		{
			name: "empty output dir",
			kb:   kb,
			opts: []generator.Option{generator.WithOutputDir("")},
		},
		{
			name: "package name with hyphen",
			kb:   kb,
			opts: []generator.Option{generator.WithPackageName("prop-defs")},
		},
		{
			name: "package name starting with digit",
			kb:   kb,
			opts: []generator.Option{generator.WithPackageName("1defs")},
		},
		{
			name: "empty package name",
			kb:   kb,
			opts: []generator.Option{generator.WithPackageName("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generator.New(tt.kb, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	gen, err := generator.New(testKnowledgeBase(t), generator.WithOutputDir(dir))
	require.NoError(t, err)

	written, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "winsps.yaml"),
		filepath.Join(dir, "definitions.go"),
	}, written)

	kbFile := readArtifact(t, written[0])
	assert.True(t, strings.HasPrefix(kbFile, "# winsps-kb property definitions\n---\n"))
	assert.Contains(t, kbFile, "name: Title")
	assert.Contains(t, kbFile, "shell_property_key: PKEY_ItemNameDisplay")

	// Documents follow (format identifier, property identifier) order;
	// b725f130 sorts before f29f85e0.
	assert.Less(t,
		strings.Index(kbFile, storageFID),
		strings.Index(kbFile, summaryFID))

	source := readArtifact(t, written[1])
	assert.True(t, strings.HasPrefix(source, "// Code generated by winspskb. DO NOT EDIT.\n"))
	assert.Contains(t, source, "package propdefs")
	assert.Contains(t, source, `"{`+summaryFID+`}/2": {`)
	assert.Contains(t, source, "func Lookup(formatID string, propertyID uint32) (Definition, bool)")
}

func TestGenerateWithDocs(t *testing.T) {
	dir := t.TempDir()

	gen, err := generator.New(testKnowledgeBase(t),
		generator.WithOutputDir(dir),
		generator.WithDocs(),
	)
	require.NoError(t, err)

	written, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, written, 3)
	assert.Equal(t, filepath.Join(dir, "docs"), written[2])

	index := readArtifact(t, filepath.Join(dir, "docs", "index.md"))
	assert.Contains(t, index, summaryFID)
	assert.Contains(t, index, storageFID)

	page := readArtifact(t, filepath.Join(dir, "docs", summaryFID+".md"))
	assert.Contains(t, page, "PKEY_Title")
}

func TestGeneratePackageName(t *testing.T) {
	dir := t.TempDir()

	gen, err := generator.New(testKnowledgeBase(t),
		generator.WithOutputDir(dir),
		generator.WithPackageName("shellprops"),
	)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background())
	require.NoError(t, err)

	source := readArtifact(t, filepath.Join(dir, "definitions.go"))
	assert.Contains(t, source, "package shellprops\n")
	assert.NotContains(t, source, "package propdefs")
}

func TestGenerateIdempotent(t *testing.T) {
	kb := testKnowledgeBase(t)

	run := func(t *testing.T) (string, string) {
		t.Helper()
		dir := t.TempDir()
		gen, err := generator.New(kb, generator.WithOutputDir(dir))
		require.NoError(t, err)
		written, err := gen.Generate(context.Background())
		require.NoError(t, err)
		return readArtifact(t, written[0]), readArtifact(t, written[1])
	}

	firstKB, firstSource := run(t)
	secondKB, secondSource := run(t)
	assert.Equal(t, firstKB, secondKB)
	assert.Equal(t, firstSource, secondSource)
}

func TestGenerateCanceledContext(t *testing.T) {
	gen, err := generator.New(testKnowledgeBase(t), generator.WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateOutputDirError(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	gen, err := generator.New(testKnowledgeBase(t),
		generator.WithOutputDir(filepath.Join(blocked, "out")))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background())
	require.Error(t, err)

	var genErr *errors.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "artifacts", genErr.Target)
}

func TestGenerateEmptyKnowledgeBase(t *testing.T) {
	dir := t.TempDir()

	gen, err := generator.New(properties.NewEmpty(), generator.WithOutputDir(dir))
	require.NoError(t, err)

	written, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, written, 2)

	assert.Equal(t, "# winsps-kb property definitions\n", readArtifact(t, written[0]))
	assert.Contains(t, readArtifact(t, written[1]), "var definitions = map[string]Definition{")
}
