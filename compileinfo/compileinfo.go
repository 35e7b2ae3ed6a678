// Package compileinfo reports the provenance of the running binary from the
// build information embedded by the Go toolchain.
package compileinfo

import (
	"fmt"
	"log"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "build information is unavailable for this binary"
	}

	commit := c.Commit
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if c.Modified {
		commit += "+dirty"
	}

	return fmt.Sprintf("%s %s (commit %s %s, %s)", c.Package, c.Version, commit, c.CommitTime, c.GoVersion)
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Log writes the compile info through the standard logger, which writes to
// stderr unless redirected.
func Log() {
	log.Println(Get())
}
