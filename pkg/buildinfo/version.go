// Package buildinfo exposes the version stamped into the binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/mypoly/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/mypoly/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mypoly/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/mypoly
//
// OBJ exports and preview server responses carry [Short] so a render can be
// traced back to the build that produced it.
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

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns "mypoly <version>" with a short commit suffix when known.
func Short() string {
	if Commit == "none" || len(Commit) < 7 {
		return "mypoly " + Version
	}
	return fmt.Sprintf("mypoly %s (%s)", Version, Commit[:7])
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
