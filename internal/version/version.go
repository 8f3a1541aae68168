// Package version exposes build metadata injected at link time.
package version

// Populated via -ldflags "-X".
var (
	Version = "dev"
	Commit  = "unknown"
)
