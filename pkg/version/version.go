// Package version carries build metadata stamped at link time.
package version

import "runtime/debug"

// Set via -ldflags at release build time. Development builds fall back to
// module build info.
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

// InitBinaryVersion fills unset fields from the embedded module build info.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "<unknown>" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == "<unknown>" {
				Date = setting.Value
			}
		}
	}
}
