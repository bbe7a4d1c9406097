// Package version exposes build information for RescuEdge binaries.
//
// Release builds stamp the variables with -ldflags:
//
//	go build -ldflags "-X github.com/rapidrescue/rescuedge/version.Version=1.2.0" ./cmd/rescuedge
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// APIVersion is reported in the meta block of every corridor API response.
const APIVersion = "1.0"

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the build description served on /version.
type Info struct {
	Version    string    `json:"version"`
	APIVersion string    `json:"api_version"`
	GitCommit  string    `json:"git_commit,omitempty"`
	BuildTime  string    `json:"build_time,omitempty"`
	GoVersion  string    `json:"go_version"`
	BuildDate  time.Time `json:"build_date"`
	IsRelease  bool      `json:"is_release"`
	IsDirty    bool      `json:"is_dirty"`
}

// Get returns build information, falling back to the VCS stamps the Go
// toolchain embeds when ldflags were not set.
func Get() Info {
	info := Info{
		Version:    Version,
		APIVersion: APIVersion,
		GitCommit:  GitCommit,
		BuildTime:  BuildTime,
		IsRelease:  Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = shortCommit(s.Value)
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildDate = t
						info.BuildTime = s.Value
					}
				}
			}
		}
	}
	return info
}

// Short returns "<version>[-<commit>][-dirty]".
func Short() string {
	return Get().Short()
}

// Short formats the info as "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// String includes the build date when known.
func (i Info) String() string {
	if i.BuildDate.IsZero() {
		return i.Short()
	}
	return fmt.Sprintf("%s (built %s)", i.Short(), i.BuildDate.UTC().Format(time.RFC3339))
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
