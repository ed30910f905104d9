// Package buildinfo exposes version information injected at build time via
// ldflags:
//
//	go build -ldflags "-X github.com/ardenhollis/structurize/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/ardenhollis/structurize/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ardenhollis/structurize/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, e.g. "v1.2.3".
	Version = "dev"
	// Commit is the git commit SHA the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns a multi-line human-readable summary.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns cobra's version-template string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
