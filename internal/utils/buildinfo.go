package utils

import "runtime/debug"

const unknownVersion = "unknown"

// GetApplicationVersion returns the module version recorded in Go build info,
// or "unknown" for local development builds.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
