// Package version reports the build version, set at link time with
// -ldflags "-X github.com/systech-labs/deskflow/internal/shared/version.Current=v1.4.0".
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is "dev" for local builds.
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a tagged semver build rather than a
// development one.
func IsRelease(v string) bool {
	v = Normalize(v)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// Info is the version block of the health endpoint.
type Info struct {
	Version string `json:"version"`
	Release bool   `json:"release"`
}

func Get() Info {
	return Info{Version: Current, Release: IsRelease(Current)}
}
