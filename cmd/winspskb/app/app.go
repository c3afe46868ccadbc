// Package app provides the application context and dependency management
// for the winspskb CLI. It centralizes configuration, logging, and access
// to the knowledge base client the commands operate on.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/propstore/winspskb"
	"github.com/propstore/winspskb/pkg/errors"
	"github.com/propstore/winspskb/pkg/properties"
	"github.com/propstore/winspskb/pkg/sources"
)

// App represents the winspskb application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Knowledge base client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client winspskb.Client
}

// New creates a new App instance with the given version information.
// The app loads its configuration up front; functional options can
// replace parts of it, mostly for tests.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether minimal output was requested.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// DefaultOutputDir returns the configured artifact output directory.
func (a *App) DefaultOutputDir() string {
	return a.config.OutputDir
}

// DefaultPrecedence returns the configured source precedence list, or
// empty when the built-in order applies.
func (a *App) DefaultPrecedence() string {
	return a.config.Precedence
}

// DefaultBaseline returns the configured baseline knowledge base path,
// or empty when merges start from scratch.
func (a *App) DefaultBaseline() string {
	return a.config.Baseline
}

// Client returns the knowledge base client, creating it lazily from the
// app configuration. The configured path is used when set; otherwise the
// client serves the embedded definitions. The instance is shared across
// commands.
func (a *App) Client() (winspskb.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions()
	if err != nil {
		return nil, err
	}
	c, err := winspskb.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client with custom options. This is
// useful for commands that need a configuration different from the
// default app instance, such as a build under explicit precedence flags.
func (a *App) ClientWithOptions(opts ...winspskb.Option) (winspskb.Client, error) {
	c, err := winspskb.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// KnowledgeBase returns a copy of the knowledge base the shared client
// serves lookups from. This is a convenience method that handles the
// client initialization and knowledge base retrieval in one call.
func (a *App) KnowledgeBase() (properties.KnowledgeBase, error) {
	c, err := a.Client()
	if err != nil {
		return nil, err
	}
	return c.KnowledgeBase()
}

// OpenKnowledgeBase opens the knowledge base at path. An empty path
// falls back to the shared client's knowledge base; an explicit path
// always opens a fresh one.
func (a *App) OpenKnowledgeBase(path string) (properties.KnowledgeBase, error) {
	if path == "" {
		return a.KnowledgeBase()
	}

	c, err := a.ClientWithOptions(winspskb.WithPath(path))
	if err != nil {
		return nil, err
	}
	return c.KnowledgeBase()
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() ([]winspskb.Option, error) {
	var opts []winspskb.Option

	if a.config.KnowledgeBase != "" {
		opts = append(opts, winspskb.WithPath(a.config.KnowledgeBase))
	}

	if a.config.Precedence != "" {
		precedence, err := sources.ParsePrecedence(a.config.Precedence)
		if err != nil {
			return nil, err
		}
		opts = append(opts, winspskb.WithPrecedence(precedence))
	}

	if a.config.Baseline != "" {
		opts = append(opts, winspskb.WithBaseline(a.config.Baseline))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c winspskb.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithKnowledgeBase sets a custom knowledge base for the shared client
// to serve (useful for testing).
func WithKnowledgeBase(kb properties.KnowledgeBase) Option {
	return func(a *App) error {
		c, err := winspskb.New(winspskb.WithKnowledgeBase(kb))
		if err != nil {
			return err
		}
		a.client = c
		return nil
	}
}
