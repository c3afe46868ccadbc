package winspskb

import (
	"github.com/propstore/winspskb/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles knowledge base persistence operations.
type Persistence interface {
	// Save writes the current knowledge base to path in canonical form.
	Save(path string) error
}

// Save persists the current knowledge base to disk. The canonical form
// is deterministic, so saving an unchanged knowledge base rewrites the
// file byte for byte.
func (c *client) Save(path string) error {
	if path == "" {
		return &errors.ValidationError{
			Field:   "path",
			Message: "cannot be empty",
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.kb.Save(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
