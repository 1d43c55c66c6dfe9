package cli

import "github.com/matzehuels/poimap/pkg/buildinfo"

// SetVersion sets the version information displayed by --version from
// values injected into the main package via ldflags. Empty values keep the
// buildinfo defaults.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2026-10-19T14:32:01Z")
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}
