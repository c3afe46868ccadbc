package reconciler

import (
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/sources"
)

// options configures a reconciler.
type options struct {
	strategy     Strategy
	precedence   sources.Precedence
	ranks        sources.Ranks
	tracking     bool
	baselinePath string
}

func defaultOptions() *options {
	return &options{
		precedence: sources.Default(),
		tracking:   true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values. When no
// explicit strategy is set, a source-order strategy is built from the
// rank map, or from the precedence list when no ranks were given.
func newOptions(opts ...Option) (*options, error) {
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if options.strategy == nil {
		ranks := options.ranks
		if ranks == nil {
			ranks = options.precedence.Ranks()
		}
		options.strategy = NewSourceOrderStrategy(ranks)
	}
	return options, nil
}

// WithStrategy sets the conflict resolution strategy.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithPrecedence sets the source precedence order. The policy is
// validated up front so a bad configuration fails before any loading
// starts.
func WithPrecedence(precedence sources.Precedence) Option {
	return func(o *options) error {
		if err := precedence.Validate(nil); err != nil {
			return err
		}
		o.precedence = precedence
		return nil
	}
}

// WithRanks sets an explicit rank map, which unlike a precedence list
// can place several sources in the same tier.
func WithRanks(ranks sources.Ranks) Option {
	return func(o *options) error {
		if len(ranks) == 0 {
			return &errors.PrecedenceError{Message: "empty rank map"}
		}
		o.ranks = ranks
		return nil
	}
}

// WithProvenance enables or disables field-level tracking.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}

// WithBaseline adds a persisted knowledge base as the highest-ranked
// source, so a merge builds on earlier output instead of starting over.
func WithBaseline(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "baseline",
				Message: "path cannot be empty",
			}
		}
		o.baselinePath = path
		return nil
	}
}
