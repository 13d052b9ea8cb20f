// File: version.go
// Title: Build Version Information
// Description: Version, commit and build date of the smython binary. The
//              variables are set at link time:
//              -ldflags "-X github.com/msto63/smython/pkg/core/version.Commit=..."
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-27
// Modified: 2025-03-27
//
// Change History:
// - 2025-03-27 v0.1.0: Initial version package

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata, overridden by the linker
var (
	Version   = "0.1.0"
	Commit    = ""
	BuildDate = ""
)

// Language is the Smython grammar revision the parser implements
const Language = "3.0"

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Language  string `json:"language"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information. A missing commit is taken from the
// VCS stamp of the Go build when available.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		Language:  Language,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.Commit = s.Value
				}
			}
		}
	}
	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}
	return info
}

// String renders the information as one line
func (i Info) String() string {
	s := fmt.Sprintf("smython %s (language %s, %s, %s)", i.Version, i.Language, i.GoVersion, i.Platform)
	if i.Commit != "" {
		s += " commit " + i.Commit
	}
	if i.BuildDate != "" {
		s += " built " + i.BuildDate
	}
	return s
}
