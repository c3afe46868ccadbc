package sources

import (
	"slices"
	"sync"
)

// Registry is a thread-safe collection of sources keyed by ID. A
// source set is assembled once at startup and then read by the merge
// engine, but the container stays safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[ID]Source
}

// NewRegistry creates a registry holding the given sources. A later
// source with the same ID replaces an earlier one.
func NewRegistry(srcs ...Source) *Registry {
	r := &Registry{
		sources: make(map[ID]Source, len(srcs)),
	}
	for _, src := range srcs {
		if src != nil {
			r.sources[src.ID()] = src
		}
	}
	return r
}

// Get returns the source with the given ID.
func (r *Registry) Get(id ID) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[id]
	return src, ok
}

// Set adds or replaces a source, keyed by its own ID.
func (r *Registry) Set(src Source) {
	if src == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[src.ID()] = src
}

// Delete removes the source with the given ID, if present.
func (r *Registry) Delete(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, id)
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// IDs returns the registered source IDs sorted lexically.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// List returns the registered sources ordered by ID so callers iterate
// deterministically.
func (r *Registry) List() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	srcs := make([]Source, 0, len(ids))
	for _, id := range ids {
		srcs = append(srcs, r.sources[id])
	}
	return srcs
}
