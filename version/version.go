// Package version exposes build metadata stamped at link time:
//
//	go build -ldflags "-X github.com/quillcheck/quill/version.Version=v1.2.0 ..."
//
// Unstamped binaries report the "dev" pseudo-version, which style manifests
// treat as satisfying any version constraint.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the release, or "dev".
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info is a snapshot of the build metadata plus runtime facts.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders a one-line human summary.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("quill %s (%s, built %s)", i.Version, commit, i.BuildTime)
}
