package version

import "fmt"

// Tagline is the application's tagline used in help text and the explorer header
const Tagline = "Terminal console for the OFS file service"

// Build information injected at build time via ldflags
// Example: -ldflags="-X ofsconsole/internal/version.Version=v1.0.0 ..."
var (
	Commit    = "unknown" // Git commit hash
	Date      = "unknown" // Build date (RFC3339)
	GoVersion = "unknown" // Go version used
	Version   = "dev"     // Semantic version or "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("ofsconsole %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}
