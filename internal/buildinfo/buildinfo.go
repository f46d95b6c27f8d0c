// Package buildinfo holds version information set at link time with
// -ldflags "-X github.com/govalues/bcnum/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

// Build metadata reported by bccalc --version.
var (
	Version = "dev"     // release tag
	Commit  = "none"    // git commit hash
	Date    = "unknown" // build date
)

// String returns the version followed by the commit and the build date.
func String() string {
	return fmt.Sprintf("%s (commit=%s, date=%s)", Version, Commit, Date)
}
