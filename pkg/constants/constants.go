// Package constants provides shared constants used throughout the winspskb codebase.
// This includes file permissions, artifact names, timeouts, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Artifact constants define the names of generated knowledge base artifacts
const (
	// KnowledgeBaseFile is the default filename for the persisted knowledge base
	KnowledgeBaseFile = "winsps.yaml"

	// KnowledgeBaseHeader is the comment line written at the top of the
	// persisted knowledge base file
	KnowledgeBaseHeader = "# winsps-kb property definitions"

	// GeneratedSourceFile is the default filename for the generated Go lookup source
	GeneratedSourceFile = "definitions.go"

	// GeneratedPackageName is the default package name for the generated lookup source
	GeneratedPackageName = "propdefs"

	// DocsDir is the default directory name for generated markdown documentation
	DocsDir = "docs"

	// DocsIndexFile is the filename of the generated documentation index page
	DocsIndexFile = "index.md"
)

// Timeout constants define various timeout durations used in the application
const (
	// BuildTimeout is the timeout for a full load-merge-generate run
	BuildTimeout = 5 * time.Minute
)

// Limit constants define various limits and capacities
const (
	// MaxSourceRecords is the maximum number of records accepted from a single source
	MaxSourceRecords = 100000

	// MaxNameLength is the maximum allowed length for property names
	MaxNameLength = 256
)

// Path constants
const (
	// DefaultConfigName is the base name of the CLI configuration file
	DefaultConfigName = ".winspskb"

	// DefaultOutputDir is the default directory for generated artifacts
	DefaultOutputDir = "."

	// EnvPrefix is the prefix for environment variables read by the CLI
	EnvPrefix = "winspskb"
)
