// Package version reports the k4tool build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/k4tool/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/k4tool/internal/version.Commit=abc123"
//
// If not set, they are taken from the VCS stamp in the build info, or fall
// back to "dev" and "unknown".
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		Version, Commit = fromBuildInfo(Version, Commit, readVCS())
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// vcsStamp holds the vcs.* build settings
type vcsStamp struct {
	revision string
	modified bool
	time     string
}

func readVCS() vcsStamp {
	var s vcsStamp
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			s.revision = setting.Value
		case "vcs.modified":
			s.modified = setting.Value == "true"
		case "vcs.time":
			s.time = setting.Value
		}
	}
	return s
}

// fromBuildInfo fills whichever of version and commit is empty from the
// VCS stamp: a 7-character commit hash (with "-dirty" for modified trees)
// and a "dev-YYYYMMDD" version from the commit time.
func fromBuildInfo(version, commit string, s vcsStamp) (string, string) {
	if commit == "" && s.revision != "" {
		commit = s.revision
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if s.modified {
			commit += "-dirty"
		}
	}

	if version == "" && s.time != "" {
		if t, err := time.Parse(time.RFC3339, s.time); err == nil {
			version = "dev-" + t.Format("20060102")
		}
	}

	return version, commit
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Detailed returns the version line printed by `k4tool version`
func Detailed(program string) string {
	return fmt.Sprintf("%s %s %s/%s %s", program, Full(), runtime.GOOS, runtime.GOARCH, runtime.Version())
}
