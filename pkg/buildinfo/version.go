// Package buildinfo holds the version stamped into poimap binaries.
//
// The CLI sets these from ldflags on the main package (see cli.SetVersion);
// the HTTP API reports Version from /healthz.
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the --version template for cobra.
func Template() string {
	return "{{.Name}} {{.Version}}\n" + fmt.Sprintf("commit: %s\nbuilt: %s\n", Commit, Date)
}
