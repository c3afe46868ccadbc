package properties_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
)

func TestKnowledgeBaseModes(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		kb, err := properties.New()
		require.NoError(t, err)
		assert.Equal(t, 0, kb.Len())

		def := &properties.Definition{
			FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
			PropertyIdentifier: 2,
			Name:               "Title",
		}
		require.NoError(t, kb.SetDefinition(def))

		got, err := kb.Definition(def.Key())
		require.NoError(t, err)
		assert.Equal(t, "Title", got.Name)

		_, err = kb.Definition(properties.Key{
			FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
			PropertyIdentifier: 99,
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("seeded", func(t *testing.T) {
		seed := &properties.Definition{
			FormatIdentifier:   "d5cdd502-2e9c-101b-9397-08002b2cf9ae",
			PropertyIdentifier: 15,
			Name:               "Company",
		}
		kb, err := properties.New(properties.WithDefinitions(seed))
		require.NoError(t, err)
		require.Equal(t, 1, kb.Len())

		// Seeds are cloned on the way in.
		seed.Name = "mutated"
		got, err := kb.Definition(properties.Key{
			FormatIdentifier:   "d5cdd502-2e9c-101b-9397-08002b2cf9ae",
			PropertyIdentifier: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "Company", got.Name)
	})

	t.Run("file", func(t *testing.T) {
		kb, err := properties.NewFromPath("testdata/winsps.yaml")
		require.NoError(t, err)
		assert.Equal(t, 4, kb.Len())

		got, err := kb.Definition(properties.Key{
			FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
			PropertyIdentifier: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "Author", got.Name)
		assert.Equal(t, "0x001e", got.ValueType)
	})

	t.Run("file missing", func(t *testing.T) {
		_, err := properties.NewFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("embedded", func(t *testing.T) {
		kb, err := properties.NewEmbedded()
		require.NoError(t, err)
		require.NotZero(t, kb.Len())

		title, err := kb.Definition(properties.Key{
			FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
			PropertyIdentifier: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "Title", title.Name)
		assert.Equal(t, "PKEY_Title", title.ShellPropertyKey)
		assert.Equal(t, "System.Title", title.Alias)

		size, err := kb.Definition(properties.Key{
			FormatIdentifier:   "b725f130-47ef-101a-a5f1-02608c9eebac",
			PropertyIdentifier: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, "VT_UI8", size.ValueType)
		assert.Equal(t, "FMTID_Storage", size.FormatClass)
	})
}

func TestKnowledgeBaseFreeze(t *testing.T) {
	kb, err := properties.New(properties.WithDefinitions(&properties.Definition{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 2,
		Name:               "Title",
	}))
	require.NoError(t, err)

	kb.Freeze()

	err = kb.SetDefinition(&properties.Definition{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 3,
	})
	assert.ErrorIs(t, err, errors.ErrReadOnly)

	err = kb.DeleteDefinition(properties.Key{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 2,
	})
	assert.ErrorIs(t, err, errors.ErrReadOnly)

	assert.ErrorIs(t, kb.Load(), errors.ErrReadOnly)

	// Reads still work.
	assert.Equal(t, 1, kb.Len())

	// A copy thaws: it is mutable and independent.
	cp, err := kb.Copy()
	require.NoError(t, err)
	require.NoError(t, cp.SetDefinition(&properties.Definition{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 3,
		Name:               "Subject",
	}))
	assert.Equal(t, 2, cp.Len())
	assert.Equal(t, 1, kb.Len())
}

func TestKnowledgeBaseAll(t *testing.T) {
	kb, err := properties.New(properties.WithDefinitions(
		&properties.Definition{FormatIdentifier: "f29f85e0-4ff9-1068-ab91-08002b27b3d9", PropertyIdentifier: 14},
		&properties.Definition{FormatIdentifier: "b725f130-47ef-101a-a5f1-02608c9eebac", PropertyIdentifier: 12},
		&properties.Definition{FormatIdentifier: "f29f85e0-4ff9-1068-ab91-08002b27b3d9", PropertyIdentifier: 2},
	))
	require.NoError(t, err)

	var keys []string
	for def := range kb.All() {
		keys = append(keys, def.Key().String())
	}
	assert.Equal(t, []string{
		"{b725f130-47ef-101a-a5f1-02608c9eebac}/12",
		"{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2",
		"{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/14",
	}, keys)

	// Early break is honored.
	count := 0
	for range kb.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestKnowledgeBaseSaveRoundTrip(t *testing.T) {
	kb, err := properties.New(properties.WithDefinitions(
		&properties.Definition{
			FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
			PropertyIdentifier: 2,
			Name:               "Title",
			ShellPropertyKey:   "PKEY_Title",
			ValueType:          "VT_LPSTR",
			FormatClass:        "FMTID_SummaryInformation",
			Alias:              "System.Title",
			Provenance:         []string{"docs", "headers"},
		},
		&properties.Definition{
			FormatIdentifier:   "b725f130-47ef-101a-a5f1-02608c9eebac",
			PropertyIdentifier: 12,
			Name:               "Size",
			ValueType:          "VT_UI8",
		},
	))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "winsps.yaml")
	require.NoError(t, kb.Save(path))

	reloaded, err := properties.NewFromPath(path)
	require.NoError(t, err)
	require.Equal(t, kb.Len(), reloaded.Len())

	// Provenance stays behind: everything else round-trips.
	want := kb.Definitions().List()
	for i := range want {
		want[i] = want[i].Clone()
		want[i].Provenance = nil
	}
	if diff := cmp.Diff(want, reloaded.Definitions().List()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// Saving again produces identical bytes.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Save(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestKnowledgeBaseSaveWithoutPath(t *testing.T) {
	kb, err := properties.New()
	require.NoError(t, err)

	err = kb.Save("")
	require.Error(t, err)

	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)
}
