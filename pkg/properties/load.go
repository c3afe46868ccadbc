package properties

import (
	"io/fs"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
)

// Load reads the knowledge base from the configured filesystem, replacing
// current contents. Every call re-reads the backing file.
func (kb *knowledgebase) Load() error {
	if kb.frozen.Load() {
		return errors.ErrReadOnly
	}
	if kb.options.readFS == nil {
		return nil // Memory knowledge base - nothing to load
	}

	data, err := fs.ReadFile(kb.options.readFS, kb.options.filename)
	if err != nil {
		return errors.WrapIO("read", kb.options.filename, err)
	}

	defs, err := DecodeDefinitions(data)
	if err != nil {
		return err
	}

	kb.definitions.Clear()
	for _, def := range defs {
		_ = kb.definitions.Set(def) // def is never nil here
	}

	logging.Debug().
		Str("file", kb.options.filename).
		Int("definitions", len(defs)).
		Msg("Knowledge base loaded")

	return nil
}
