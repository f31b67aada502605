// Package version exposes the build version, commit, and date stamped in at
// link time.
package version

// Overwritten in release builds with
// -ldflags "-X github.com/kailas-cloud/imagedex/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
