package properties

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Definitions is a concurrent safe map of property definitions keyed by
// their property key.
type Definitions struct {
	mu          sync.RWMutex
	definitions map[Key]*Definition
}

// DefinitionsOption defines a function that configures a Definitions instance.
type DefinitionsOption func(*Definitions)

// WithDefinitionsCapacity sets the initial capacity of the definitions map.
func WithDefinitionsCapacity(capacity int) DefinitionsOption {
	return func(d *Definitions) {
		d.definitions = make(map[Key]*Definition, capacity)
	}
}

// WithDefinitionsMap initializes the map with existing definitions.
func WithDefinitionsMap(definitions map[Key]*Definition) DefinitionsOption {
	return func(d *Definitions) {
		if definitions != nil {
			d.definitions = make(map[Key]*Definition, len(definitions))
			maps.Copy(d.definitions, definitions)
		}
	}
}

// NewDefinitions creates a new Definitions map with optional configuration.
func NewDefinitions(opts ...DefinitionsOption) *Definitions {
	d := &Definitions{
		definitions: make(map[Key]*Definition),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Get returns a definition by key and whether it exists.
func (d *Definitions) Get(key Key) (*Definition, bool) {
	d.mu.RLock()
	def, ok := d.definitions[key]
	d.mu.RUnlock()
	return def, ok
}

// Set sets a definition by its own key. Returns an error if def is nil.
func (d *Definitions) Set(def *Definition) error {
	if def == nil {
		return fmt.Errorf("definition cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.definitions[def.Key()] = def
	return nil
}

// Add adds a definition, returning an error if its key already exists.
func (d *Definitions) Add(def *Definition) error {
	if def == nil {
		return fmt.Errorf("definition cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := def.Key()
	if _, exists := d.definitions[key]; exists {
		return fmt.Errorf("definition with key %s already exists", key)
	}

	d.definitions[key] = def
	return nil
}

// Delete removes a definition by key. Returns an error if the definition
// doesn't exist.
func (d *Definitions) Delete(key Key) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.definitions[key]; !exists {
		return fmt.Errorf("definition with key %s not found", key)
	}

	delete(d.definitions, key)
	return nil
}

// Exists checks if a definition exists without returning it.
func (d *Definitions) Exists(key Key) bool {
	d.mu.RLock()
	_, exists := d.definitions[key]
	d.mu.RUnlock()
	return exists
}

// Len returns the number of definitions.
func (d *Definitions) Len() int {
	d.mu.RLock()
	length := len(d.definitions)
	d.mu.RUnlock()
	return length
}

// List returns a slice of all definitions sorted by key: format
// identifier first, property identifier second. The ordering is the
// canonical serialization order of the knowledge base.
func (d *Definitions) List() []*Definition {
	d.mu.RLock()
	defs := make([]*Definition, 0, len(d.definitions))
	for _, def := range d.definitions {
		defs = append(defs, def)
	}
	d.mu.RUnlock()

	slices.SortFunc(defs, func(a, b *Definition) int {
		return a.Key().Compare(b.Key())
	})
	return defs
}

// Map returns a copy of the underlying map.
func (d *Definitions) Map() map[Key]*Definition {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make(map[Key]*Definition, len(d.definitions))
	maps.Copy(result, d.definitions)
	return result
}

// ForEach applies a function to each definition in unspecified order. The
// function should not modify the definition. If the function returns
// false, iteration stops early.
func (d *Definitions) ForEach(fn func(key Key, def *Definition) bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for key, def := range d.definitions {
		if !fn(key, def) {
			break
		}
	}
}

// Clear removes all definitions.
func (d *Definitions) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k := range d.definitions {
		delete(d.definitions, k)
	}
}
