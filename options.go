package winspskb

import (
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/sources"
)

// Option is a function that configures a Client instance.
type Option func(*options) error

// options are the configured options for a client.
type options struct {
	path       string                   // knowledge base file to load instead of the embedded one
	kb         properties.KnowledgeBase // preloaded knowledge base, takes priority over path
	precedence sources.Precedence       // source precedence used by Merge
	baseline   string                   // persisted knowledge base merged in as the highest-ranked source
	provenance bool                     // field-level provenance tracking during Merge
}

// defaults returns the default client options.
func defaults() *options {
	return &options{
		provenance: true,
	}
}

// apply applies the given options in order.
func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithPath loads the knowledge base from a persisted file instead of the
// embedded canonical one.
func WithPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "path",
				Message: "cannot be empty",
			}
		}
		o.path = path
		return nil
	}
}

// WithKnowledgeBase configures an already loaded knowledge base to serve
// lookups from. Takes priority over WithPath.
func WithKnowledgeBase(kb properties.KnowledgeBase) Option {
	return func(o *options) error {
		if kb == nil {
			return &errors.ValidationError{
				Field:   "knowledge base",
				Message: "cannot be nil",
			}
		}
		o.kb = kb
		return nil
	}
}

// WithPrecedence configures the source precedence order used by Merge.
// The policy is validated up front so a bad configuration fails at
// client creation instead of mid-merge.
func WithPrecedence(precedence sources.Precedence) Option {
	return func(o *options) error {
		if err := precedence.Validate(nil); err != nil {
			return err
		}
		o.precedence = precedence
		return nil
	}
}

// WithBaseline configures a persisted knowledge base that Merge builds
// on, ranked above every other source.
func WithBaseline(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "baseline",
				Message: "path cannot be empty",
			}
		}
		o.baseline = path
		return nil
	}
}

// WithProvenance configures whether Merge records field-level source
// attribution. Enabled by default.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.provenance = enabled
		return nil
	}
}
