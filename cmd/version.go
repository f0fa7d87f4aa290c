package cmd

import (
	"github.com/Masterminds/semver/v3"
)

// Version is overridden at build time with -ldflags "-X .../cmd.Version=...".
var Version = "0.3.0"

// versionString returns Version as "v<semver>", or unchanged when it does
// not parse as a semantic version.
func versionString() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return Version
	}
	return "v" + v.String()
}
