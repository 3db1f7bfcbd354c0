// Package version reports build information for keysync.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set via ldflags:
//
//	go build -ldflags "-X keysync/internal/version.Version=1.2.0 \
//	                   -X keysync/internal/version.Commit=$(git rev-parse HEAD) \
//	                   -X keysync/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	         ./cmd/keysync
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	Commit    string    `json:"commit" yaml:"commit"`
	BuildTime time.Time `json:"build_time" yaml:"build_time"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	OS        string    `json:"os" yaml:"os"`
	Arch      string    `json:"arch" yaml:"arch"`
}

// Get returns the version information. Values not set through ldflags are
// filled from the module build info when the binary was built with
// `go install`.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: parseBuildTime(BuildTime),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "0.1.0-dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime.IsZero() {
				info.BuildTime = parseBuildTime(s.Value)
			}
		}
	}
}

func parseBuildTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// String returns the version with a short commit hash.
func (i Info) String() string {
	if i.Commit != "unknown" && len(i.Commit) > 7 {
		return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
	}
	return i.Version
}

// Full returns a multi-line description of the build.
func (i Info) Full() string {
	built := "unknown"
	if !i.BuildTime.IsZero() {
		built = i.BuildTime.Format(time.RFC3339)
	}
	return fmt.Sprintf("keysync %s\nCommit: %s\nBuilt: %s\nGo: %s\nPlatform: %s/%s",
		i.Version, i.Commit, built, i.GoVersion, i.OS, i.Arch)
}
