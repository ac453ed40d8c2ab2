package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the girpc build version. Installs via `go install ...@v`
// carry the module version in the build info; everything else is a
// development build, identified by the embedded version plus the VCS
// revision when one was recorded.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	v := "devel-" + strings.TrimSpace(embeddedVersion)
	if ok {
		if rev := vcsRevision(info); rev != "" {
			v += "+" + rev
		}
	}
	return v
}

// vcsRevision returns the short VCS revision from the build info, or "".
func vcsRevision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key != "vcs.revision" {
			continue
		}
		rev := s.Value
		if len(rev) > 7 {
			rev = rev[:7]
		}
		return rev
	}
	return ""
}
