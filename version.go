package dson

import "fmt"

// Version of the dson library
const Version = "0.3.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("dson v%s", Version)
	}
	return fmt.Sprintf("dson v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
