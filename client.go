// Package winspskb provides the main entry point for the Windows Shell
// property store knowledge base system. It offers a high-level interface
// for resolving shell property keys against a canonical knowledge base
// and for rebuilding that knowledge base from raw source record streams.
//
// winspskb wraps the underlying merge and storage system with additional
// features including:
// - Out-of-the-box lookups against the embedded canonical knowledge base
// - Deterministic merges of multiple source streams under a precedence policy
// - Thread-safe knowledge base access with copy-on-read semantics
// - Flexible configuration through functional options
// - Field-level provenance reporting for merged definitions
//
// Example usage:
//
//	// Create a client serving the embedded knowledge base
//	kb, err := winspskb.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Resolve a shell property key
//	def, err := kb.Lookup("f29f85e0-4ff9-1068-ab91-08002b27b3d9", 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%s)\n", def.Name, def.ValueType)
//
//	// Or resolve the textual lookup key form
//	def, err = kb.LookupKey("{f29f85e0-4ff9-1068-ab91-08002b27b3d9}/2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Rebuild the knowledge base from source record streams
//	result, err := kb.Merge(ctx,
//	    sources.New(sources.Headers, "data/header_properties.yaml"),
//	    sources.New(sources.Docs, "data/docs_properties.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Persist the merged knowledge base
//	if err := kb.Save("build/winsps.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configure with custom options
//	kb, err = winspskb.New(
//	    winspskb.WithPath("build/winsps.yaml"),
//	    winspskb.WithPrecedence(sources.Precedence{sources.Docs, sources.Headers}),
//	)
package winspskb

import (
	"sync"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/logging"
	"github.com/propstore/winspskb/pkg/properties"
)

// Compile-time interface check to ensure proper implementation.
var _ KnowledgeBase = (*client)(nil)

// KnowledgeBase provides copy-on-read access to the knowledge base.
type KnowledgeBase interface {
	KnowledgeBase() (properties.KnowledgeBase, error)
}

// KnowledgeBase returns a copy of the current knowledge base.
func (c *client) KnowledgeBase() (properties.KnowledgeBase, error) {
	c.mu.RLock()
	kb, err := c.kb.Copy()
	c.mu.RUnlock()
	return kb, err
}

// Client serves shell property key lookups and rebuilds the knowledge
// base they are answered from.
type Client interface {

	// KnowledgeBase provides copy-on-read access to the knowledge base
	KnowledgeBase

	// Lookups resolves shell property keys against the knowledge base
	Lookups

	// Merger rebuilds the knowledge base from source record streams
	Merger

	// Persistence handles knowledge base persistence operations
	Persistence
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// kb is the knowledge base lookups are answered from
	mu sync.RWMutex
	kb properties.KnowledgeBase
}

// New creates a new Client instance with the given options. Without
// options the client serves the embedded canonical knowledge base.
func New(opts ...Option) (Client, error) {
	options := defaults()
	if err := options.apply(opts...); err != nil {
		return nil, err
	}

	c := &client{options: options}

	// Use the supplied knowledge base, or load one from the configured
	// path, or fall back to the embedded canonical definitions.
	var err error
	switch {
	case options.kb != nil:
		c.kb = options.kb
	case options.path != "":
		if c.kb, err = properties.NewFromPath(options.path); err != nil {
			return nil, errors.WrapResource("load", "knowledge base", options.path, err)
		}
	default:
		if c.kb, err = properties.NewEmbedded(); err != nil {
			return nil, errors.WrapResource("load", "embedded knowledge base", "", err)
		}
	}

	logging.Debug().
		Int("definitions", c.kb.Len()).
		Str("path", options.path).
		Msg("Knowledge base loaded")

	return c, nil
}

// setKnowledgeBase swaps the knowledge base lookups are answered from.
func (c *client) setKnowledgeBase(kb properties.KnowledgeBase) {
	c.mu.Lock()
	c.kb = kb
	c.mu.Unlock()
}
