// Package embedded carries the canonical knowledge base compiled into the
// binary so lookups work without any files on disk.
package embedded

import (
	"embed"
)

// FS embeds the canonical knowledge base file at build time.
//
//go:embed winsps.yaml
var FS embed.FS
