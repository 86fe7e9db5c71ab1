// Package version holds build-time metadata injected via ldflags.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// These variables are set at build time using -ldflags:
//
//	-X 'github.com/janekbaraniewski/timeplot/internal/version.Version=...'
//	-X 'github.com/janekbaraniewski/timeplot/internal/version.CommitHash=...'
//	-X 'github.com/janekbaraniewski/timeplot/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a formatted version string.
func String() string {
	v := Version
	if s := Semver(); s != "" {
		v = s
	}
	return v + " (" + CommitHash + ") built " + BuildDate
}

// Semver returns Version in canonical "vMAJOR.MINOR.PATCH" form, or "" for
// development and pre-release builds.
func Semver() string {
	return normalize(Version)
}

func normalize(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	if semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}
