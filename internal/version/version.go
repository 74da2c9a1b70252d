// Package version holds build information for pacdec.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/pacdec/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/pacdec/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/pacdec/internal/version.Date={{.Date}}
)
