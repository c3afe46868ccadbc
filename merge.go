package winspskb

import (
	"context"

	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/reconciler"
	"github.com/propstore/winspskb/pkg/sources"
)

// Compile-time interface check to ensure proper implementation.
var _ Merger = (*client)(nil)

// Merger rebuilds the knowledge base from source record streams.
type Merger interface {
	// Merge loads the given sources, resolves every claimed property key
	// under the configured precedence, and returns the merge result. A
	// clean result replaces the knowledge base lookups are answered
	// from; a result with validation errors leaves it untouched.
	Merge(ctx context.Context, srcs ...sources.Source) (*reconciler.Result, error)
}

// Merge rebuilds the knowledge base from the given sources.
func (c *client) Merge(ctx context.Context, srcs ...sources.Source) (*reconciler.Result, error) {
	// create reconciler options from the client configuration
	opts := []reconciler.Option{
		reconciler.WithProvenance(c.options.provenance),
	}
	if len(c.options.precedence) > 0 {
		opts = append(opts, reconciler.WithPrecedence(c.options.precedence))
	}
	if c.options.baseline != "" {
		opts = append(opts, reconciler.WithBaseline(c.options.baseline))
	}

	merge, err := reconciler.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	result, err := merge.Merge(ctx, srcs...)
	if err != nil {
		return nil, err
	}

	// Only a clean merge replaces the serving knowledge base.
	if result.IsSuccess() {
		c.setKnowledgeBase(result.KnowledgeBase)
	}

	return result, nil
}
