package properties

import "iter"

// Reader provides read-only access to knowledge base data.
type Reader interface {
	// Definitions returns the definitions collection.
	Definitions() *Definitions

	// Definition returns the definition for a key, or a not found error.
	Definition(key Key) (*Definition, error)

	// All returns an ordered, restartable iterator over every definition
	// sorted by key. Each call re-derives the sequence from the current
	// contents.
	All() iter.Seq[*Definition]

	// Len returns the number of definitions.
	Len() int
}

// Writer provides write operations for knowledge base data. Writes are
// only valid before the knowledge base is frozen; afterwards they fail
// with ErrReadOnly.
type Writer interface {
	// SetDefinition sets a definition (upsert semantics).
	SetDefinition(def *Definition) error

	// DeleteDefinition deletes a definition by key.
	DeleteDefinition(key Key) error

	// Freeze marks the knowledge base read-only. Freezing is idempotent
	// and cannot be undone.
	Freeze()
}

// Copier provides knowledge base copying capabilities.
type Copier interface {
	// Copy returns a deep copy of the knowledge base. The copy is not
	// frozen, regardless of the receiver's state.
	Copy() (KnowledgeBase, error)
}

// Persistence provides load and save operations for knowledge base data.
type Persistence interface {
	// Load reads definitions from the configured filesystem, replacing
	// current contents. Each call re-reads the backing file.
	Load() error

	// Save writes the knowledge base to path in canonical form. An empty
	// path falls back to the configured write path.
	Save(path string) error
}

// KnowledgeBase is the complete interface combining all capabilities.
// This interface is composed of smaller, focused interfaces following
// the Interface Segregation Principle.
type KnowledgeBase interface {
	Reader
	Writer
	Copier
	Persistence
}

// ReadOnly provides read-only access to a knowledge base.
type ReadOnly interface {
	Reader
	Copier
}
