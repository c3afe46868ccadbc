package properties

import (
	"os"
	"path/filepath"

	"github.com/propstore/winspskb/pkg/constants"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
)

// Save writes the knowledge base to path in canonical form. An empty path
// falls back to the write path configured with WithPath or WithWritePath.
// Saving is permitted on a frozen knowledge base.
func (kb *knowledgebase) Save(path string) error {
	if path == "" {
		path = kb.options.writePath
	}
	if path == "" {
		return &errors.ConfigError{
			Component: "knowledge base",
			Message:   "no write path configured for saving",
		}
	}

	data, err := EncodeDefinitions(kb.definitions.List())
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Debug().
		Str("path", path).
		Int("definitions", kb.definitions.Len()).
		Msg("Knowledge base saved")

	return nil
}
