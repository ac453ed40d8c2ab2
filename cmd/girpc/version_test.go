package main

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	// Test binaries are development builds, so the version is the
	// embedded one, optionally suffixed with a VCS revision.
	v := Version()
	base := "devel-" + strings.TrimSpace(embeddedVersion)
	if !strings.HasPrefix(v, base) {
		t.Errorf("Version() = %q, want prefix %q", v, base)
	}
}

func TestVcsRevision(t *testing.T) {
	tests := []struct {
		rev  string
		want string
	}{
		{"0123456789abcdef", "0123456"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		info := &debug.BuildInfo{}
		if tt.rev != "" {
			info.Settings = []debug.BuildSetting{{Key: "vcs.revision", Value: tt.rev}}
		}
		if got := vcsRevision(info); got != tt.want {
			t.Errorf("vcsRevision(%q) = %q, want %q", tt.rev, got, tt.want)
		}
	}
}
