package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionFormat(t *testing.T) {
	if !semverRegex.MatchString(Version) {
		t.Errorf("Version %q does not match semver format (x.y.z)", Version)
	}
	if Language == "" {
		t.Error("Language is empty")
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if len(info.Commit) > 12 {
		t.Errorf("Commit %q is not shortened", info.Commit)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name     string
		info     Info
		expected string
	}{
		{
			name:     "plain",
			info:     Info{Version: "1.2.3", Language: "3.0", GoVersion: "go1.24.0", Platform: "linux/amd64"},
			expected: "smython 1.2.3 (language 3.0, go1.24.0, linux/amd64)",
		},
		{
			name:     "with build metadata",
			info:     Info{Version: "1.2.3", Language: "3.0", GoVersion: "go1.24.0", Platform: "linux/amd64", Commit: "abc123", BuildDate: "2025-03-27"},
			expected: "smython 1.2.3 (language 3.0, go1.24.0, linux/amd64) commit abc123 built 2025-03-27",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLinkerOverride(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "0123456789abcdef"
	if got := Get().Commit; got != "0123456789ab" {
		t.Errorf("Commit = %q, want shortened hash", got)
	}
	if !strings.Contains(Get().String(), "commit 0123456789ab") {
		t.Errorf("String() misses commit: %s", Get().String())
	}
}
