package properties_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstore/winspskb/pkg/properties"
)

func testDefinition(fid string, pid uint32, name string) *properties.Definition {
	return &properties.Definition{
		FormatIdentifier:   fid,
		PropertyIdentifier: pid,
		Name:               name,
	}
}

func TestDefinitionsCRUD(t *testing.T) {
	defs := properties.NewDefinitions()

	title := testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2, "Title")
	require.NoError(t, defs.Set(title))
	assert.Equal(t, 1, defs.Len())
	assert.True(t, defs.Exists(title.Key()))

	got, ok := defs.Get(title.Key())
	require.True(t, ok)
	assert.Equal(t, "Title", got.Name)

	// Add refuses duplicates, Set overwrites.
	err := defs.Add(testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2, "Other"))
	require.Error(t, err)
	require.NoError(t, defs.Set(testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2, "Renamed")))
	got, ok = defs.Get(title.Key())
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)

	// Nil definitions are rejected.
	require.Error(t, defs.Set(nil))
	require.Error(t, defs.Add(nil))

	// Delete removes, and reports missing keys.
	require.NoError(t, defs.Delete(title.Key()))
	assert.False(t, defs.Exists(title.Key()))
	require.Error(t, defs.Delete(title.Key()))
}

func TestDefinitionsListOrder(t *testing.T) {
	defs := properties.NewDefinitions(properties.WithDefinitionsCapacity(8))

	// Insert out of canonical order on purpose.
	require.NoError(t, defs.Set(testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 14, "Page count")))
	require.NoError(t, defs.Set(testDefinition("b725f130-47ef-101a-a5f1-02608c9eebac", 12, "Size")))
	require.NoError(t, defs.Set(testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2, "Title")))
	require.NoError(t, defs.Set(testDefinition("d5cdd502-2e9c-101b-9397-08002b2cf9ae", 2, "Category")))

	var keys []string
	for _, def := range defs.List() {
		keys = append(keys, def.Key().String())
	}

	assert.Equal(t, []string{
		"{b725f130-47ef-101a-a5f1-02608c9eebac}/12",
		"{d5cdd502-2e9c-101b-9397-08002b2cf9ae}/2",
		"{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2",
		"{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/14",
	}, keys)
}

func TestDefinitionsMapIsCopy(t *testing.T) {
	defs := properties.NewDefinitions(properties.WithDefinitionsMap(map[properties.Key]*properties.Definition{
		{FormatIdentifier: "f29f85e0-4ff9-1068-ab91-08002b27b3d9", PropertyIdentifier: 2}: testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2, "Title"),
	}))

	m := defs.Map()
	require.Len(t, m, 1)

	// Deleting from the returned map must not affect the container.
	for k := range m {
		delete(m, k)
	}
	assert.Equal(t, 1, defs.Len())
}

func TestDefinitionsForEach(t *testing.T) {
	defs := properties.NewDefinitions()
	for pid := uint32(2); pid <= 6; pid++ {
		require.NoError(t, defs.Set(testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", pid, "")))
	}

	seen := 0
	defs.ForEach(func(_ properties.Key, _ *properties.Definition) bool {
		seen++
		return seen < 3 // stop early
	})
	assert.Equal(t, 3, seen)

	defs.Clear()
	assert.Equal(t, 0, defs.Len())
}

func TestDefinitionsConcurrentAccess(t *testing.T) {
	defs := properties.NewDefinitions()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for pid := uint32(0); pid < 50; pid++ {
				def := testDefinition("f29f85e0-4ff9-1068-ab91-08002b27b3d9", pid, fmt.Sprintf("writer-%d", n))
				_ = defs.Set(def)
				_, _ = defs.Get(def.Key())
				_ = defs.List()
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 50, defs.Len())
}
