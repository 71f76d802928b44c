package version

import (
	"fmt"
	"runtime"
)

// Version and Commit are set at build time via -ldflags
var (
	Version = "dev"
	Commit  = ""
)

// Get returns the current version
func Get() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// String formats the version line printed by `termagent version`.
func String() string {
	s := "termagent version " + Get()
	if Commit != "" {
		s += " (" + shortCommit(Commit) + ")"
	}
	return fmt.Sprintf("%s %s/%s", s, runtime.GOOS, runtime.GOARCH)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
