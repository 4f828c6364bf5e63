// Package version holds build information, set at link time with -ldflags
// and otherwise read from the embedded module build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build information. Populated at build-time.
var (
	Version   = "dev"
	Revision  = "unknown"
	Branch    = "unknown"
	BuildUser = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Revision == "unknown" {
				Revision = s.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// String is a one-line summary of the build.
func String() string {
	return fmt.Sprintf("smarttask %s (revision %s, branch %s, built by %s on %s, %s)",
		Version, Revision, Branch, BuildUser, BuildDate, GoVersion)
}
