package properties

import (
	"io/fs"
	"iter"
	"os"
	"sync/atomic"

	"github.com/propstore/winspskb/pkg/errors"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ KnowledgeBase = (*knowledgebase)(nil)
	_ Reader        = (*knowledgebase)(nil)
	_ Writer        = (*knowledgebase)(nil)
	_ Copier        = (*knowledgebase)(nil)
	_ Persistence   = (*knowledgebase)(nil)
)

// knowledgebase is the single concrete implementation of the KnowledgeBase
// interface. It can work as:
// - Memory knowledge base (readFS == nil)
// - Embedded knowledge base (readFS is embed.FS)
// - File knowledge base (readFS is os.DirFS)
// - Custom knowledge base (readFS is any fs.FS implementation).
type knowledgebase struct {
	options     *kbOptions
	definitions *Definitions
	frozen      atomic.Bool
}

// New creates a new knowledge base with the given options.
// WithEmbedded() = embedded knowledge base with auto-load.
// WithPath(path) = file knowledge base with auto-load.
// No filesystem option = empty in-memory knowledge base.
func New(opts ...Option) (KnowledgeBase, error) {
	kb := &knowledgebase{
		definitions: NewDefinitions(),
		options:     kbDefaults().apply(opts...),
	}

	// Seed definitions supplied via options
	for _, def := range kb.options.definitions {
		if def == nil {
			continue
		}
		if err := kb.definitions.Set(def.Clone()); err != nil {
			return nil, err
		}
	}

	// Auto-load if configured with a filesystem
	if kb.options.readFS != nil {
		if err := kb.Load(); err != nil {
			return nil, errors.WrapResource("load", "knowledge base", kb.options.filename, err)
		}
	}

	return kb, nil
}

// NewEmbedded creates a knowledge base backed by the embedded definitions.
// This is the recommended knowledge base for lookup use as it includes
// the canonical definitions compiled into the binary.
func NewEmbedded() (KnowledgeBase, error) {
	return New(WithEmbedded())
}

// NewFromPath creates a knowledge base backed by a file on disk.
//
// Example:
//
//	kb, err := properties.NewFromPath("./winsps.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromPath(path string) (KnowledgeBase, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	return New(WithPath(path))
}

// NewEmpty creates an in-memory empty knowledge base. This is useful for
// testing or as the merge engine's construction target.
func NewEmpty() KnowledgeBase {
	return &knowledgebase{
		definitions: NewDefinitions(),
		options:     kbDefaults(),
	}
}

// NewFromFS creates a knowledge base from a custom filesystem
// implementation and file name within it.
func NewFromFS(fsys fs.FS, name string) (KnowledgeBase, error) {
	return New(WithFS(fsys), WithFilename(name))
}

// Definitions returns the definitions collection.
func (kb *knowledgebase) Definitions() *Definitions {
	return kb.definitions
}

// Definition returns the definition for a key. The returned definition is
// shared with the knowledge base and must not be modified.
func (kb *knowledgebase) Definition(key Key) (*Definition, error) {
	def, ok := kb.definitions.Get(key)
	if !ok {
		return nil, &errors.NotFoundError{
			Resource: "property definition",
			ID:       key.String(),
		}
	}
	return def, nil
}

// All returns an ordered iterator over every definition sorted by key.
// The sequence is restartable: each range re-derives the snapshot.
func (kb *knowledgebase) All() iter.Seq[*Definition] {
	return func(yield func(*Definition) bool) {
		for _, def := range kb.definitions.List() {
			if !yield(def) {
				return
			}
		}
	}
}

// Len returns the number of definitions.
func (kb *knowledgebase) Len() int {
	return kb.definitions.Len()
}

// SetDefinition sets a definition (upsert).
func (kb *knowledgebase) SetDefinition(def *Definition) error {
	if kb.frozen.Load() {
		return errors.ErrReadOnly
	}
	if def == nil {
		return &errors.ValidationError{Field: "definition", Message: "cannot be nil"}
	}
	return kb.definitions.Set(def)
}

// DeleteDefinition deletes a definition by key.
func (kb *knowledgebase) DeleteDefinition(key Key) error {
	if kb.frozen.Load() {
		return errors.ErrReadOnly
	}
	return kb.definitions.Delete(key)
}

// Freeze marks the knowledge base read-only.
func (kb *knowledgebase) Freeze() {
	kb.frozen.Store(true)
}

// Copy creates a deep copy of the knowledge base. The copy is mutable.
func (kb *knowledgebase) Copy() (KnowledgeBase, error) {
	clone := &knowledgebase{
		definitions: NewDefinitions(WithDefinitionsCapacity(kb.definitions.Len())),
		options:     kb.options,
	}

	for _, def := range kb.definitions.List() {
		if err := clone.definitions.Set(def.Clone()); err != nil {
			return nil, err
		}
	}

	return clone, nil
}
