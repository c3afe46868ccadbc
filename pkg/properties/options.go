package properties

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/propstore/winspskb/internal/embedded"
	"github.com/propstore/winspskb/pkg/constants"
)

// kbOptions is a struct that contains the options for the knowledge base.
type kbOptions struct {
	readFS      fs.FS  // For reading the knowledge base file
	filename    string // Name of the knowledge base file within readFS
	writePath   string // For writing the knowledge base file (optional)
	definitions []*Definition
}

// apply applies the given options to the knowledge base options.
func (o *kbOptions) apply(opts ...Option) *kbOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// kbDefaults returns the default options for a knowledge base.
func kbDefaults() *kbOptions {
	return &kbOptions{
		readFS:    nil,
		filename:  constants.KnowledgeBaseFile,
		writePath: "",
	}
}

// Option configures a knowledge base.
type Option func(*kbOptions)

// WithFS configures the knowledge base to use a custom fs.FS for reading.
func WithFS(fsys fs.FS) Option {
	return func(o *kbOptions) {
		o.readFS = fsys
	}
}

// WithPath configures the knowledge base to read from a file path.
// The file's directory backs the read filesystem and the same path is
// used for writing.
func WithPath(path string) Option {
	return func(o *kbOptions) {
		o.readFS = os.DirFS(filepath.Dir(path))
		o.filename = filepath.Base(path)
		o.writePath = path
	}
}

// WithEmbedded configures the knowledge base to use the embedded
// definitions shipped with the module.
func WithEmbedded() Option {
	return func(o *kbOptions) {
		o.readFS = embedded.FS
		o.filename = constants.KnowledgeBaseFile
	}
}

// WithFilename sets the knowledge base filename within the read filesystem.
func WithFilename(name string) Option {
	return func(o *kbOptions) {
		o.filename = name
	}
}

// WithWritePath sets a specific path for writing the knowledge base file.
func WithWritePath(path string) Option {
	return func(o *kbOptions) {
		o.writePath = path
	}
}

// WithDefinitions seeds the knowledge base with existing definitions.
func WithDefinitions(defs ...*Definition) Option {
	return func(o *kbOptions) {
		o.definitions = append(o.definitions, defs...)
	}
}
