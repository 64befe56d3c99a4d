// Package version exposes the build version string.
package version

import "runtime/debug"

// Version is overridden by ldflags at release build time.
var Version = "dev"

// GetInfo returns the version, with the short VCS revision appended when the
// binary was built from a checkout.
func GetInfo() string {
	revision := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				revision = setting.Value
			}
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision == "" {
		return Version
	}
	return Version + " (" + revision + ")"
}
