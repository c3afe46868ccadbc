package properties_test

import (
	"fmt"
	"log"

	"github.com/propstore/winspskb/pkg/properties"
)

// Example demonstrates basic knowledge base creation and lookup.
func Example() {
	// Create a memory-based knowledge base
	kb, err := properties.New()
	if err != nil {
		log.Fatal(err)
	}

	// Add a definition
	def := &properties.Definition{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 2,
		Name:               "Title",
		ShellPropertyKey:   "PKEY_Title",
	}
	if err := kb.SetDefinition(def); err != nil {
		log.Fatal(err)
	}

	// Look it up by key
	got, err := kb.Definition(properties.Key{
		FormatIdentifier:   "f29f85e0-4ff9-1068-ab91-08002b27b3d9",
		PropertyIdentifier: 2,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(got.Name)
	// Output: Title
}

// Example_lookupKey demonstrates parsing a lookup key string.
func Example_lookupKey() {
	key, err := properties.ParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}/2")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(key)
	// Output: {f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2
}

// Example_embeddedKnowledgeBase demonstrates using the embedded definitions.
func Example_embeddedKnowledgeBase() {
	kb, err := properties.NewEmbedded()
	if err != nil {
		log.Fatal(err)
	}

	def, err := kb.Definition(properties.Key{
		FormatIdentifier:   "b725f130-47ef-101a-a5f1-02608c9eebac",
		PropertyIdentifier: 10,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s (%s)\n", def.Name, def.Alias)
	// Output: Item name display (System.ItemNameDisplay)
}
