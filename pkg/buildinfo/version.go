// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/mermaidspec/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/mermaidspec/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mermaidspec/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/mermaidspec/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/mermaidspec/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/mermaidspec/pkg/buildinfo.Date=...
	Date = "unknown"
)

// Name is the program name reported in version output.
const Name = "mermaidspec"

// String returns a one-line build summary, e.g.
// "mermaidspec v0.3.0 (commit abc123, built 2026-01-02T03:04:05Z)".
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, Date)
}

// Template returns the version template for cobra's --version.
func Template() string {
	return String() + "\n"
}
