// Package version holds build metadata injected at link time.
package version

import "runtime"

// Populated via -ldflags at build time.
var (
	// GitRelease is the release tag or "dev" for local builds.
	GitRelease = "dev"
	// GitCommit is the short commit hash.
	GitCommit = "unknown"
	// GitCommitDate is the commit timestamp.
	GitCommitDate = "unknown"
)

// GoInfo is the Go toolchain version the binary was built with.
var GoInfo = runtime.Version()
