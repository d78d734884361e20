// Package version holds build information injected with ldflags.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/cardinal/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/cardinal/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/cardinal/internal/version.Date={{.Date}}
)

// Info is the build information of the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the one-line version banner.
func (i Info) String() string {
	return fmt.Sprintf("cardinal %s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}
