package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/dendrascience/webfilegen/version.Version=v1.2.3 ...".
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Info describes the running build.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// GetInfo merges the link-time variables with the module build info.
// Link-time values win.
func GetInfo() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = "development"
	}
	return info
}

func GetVersion() string {
	return GetInfo().Version
}

// GetFullVersion returns the version with the short commit and build date
// when they are known, e.g. "v1.2.3 (abc1234, built 2024-01-01T00:00:00Z)".
func GetFullVersion() string {
	info := GetInfo()
	if len(info.Commit) < 7 {
		return info.Version
	}
	if info.Date == "" {
		return fmt.Sprintf("%s (%s)", info.Version, info.Commit[:7])
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, info.Commit[:7], info.Date)
}
