package version

import "fmt"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X github.com/makeshared/sitewinder/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Name is the program name shown in about text.
const Name = "sitewinder"

// About returns the one-line description printed by --version.
func About() string {
	return fmt.Sprintf("%s %s - a static site generator (commit %s, built %s)", Name, Version, GitCommit, BuildTime)
}
