package winspskb

import (
	"fmt"

	"github.com/propstore/winspskb/pkg/properties"
)

// Compile-time interface check to ensure proper implementation.
var _ Lookups = (*client)(nil)

// Lookups resolves shell property keys against the knowledge base.
type Lookups interface {
	// Lookup resolves a format identifier and property identifier pair.
	// The format identifier accepts any GUID casing, braced or not.
	Lookup(formatID string, propertyID uint32) (*properties.Definition, error)

	// LookupKey resolves the textual lookup key form,
	// "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2".
	LookupKey(text string) (*properties.Definition, error)
}

// Lookup resolves a format identifier and property identifier pair.
func (c *client) Lookup(formatID string, propertyID uint32) (*properties.Definition, error) {
	return c.LookupKey(fmt.Sprintf("%s/%d", formatID, propertyID))
}

// LookupKey resolves a textual lookup key.
func (c *client) LookupKey(text string) (*properties.Definition, error) {
	key, err := properties.ParseKey(text)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kb.Definition(key)
}
