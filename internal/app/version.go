package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables set via -ldflags.
//
// Example build command:
//
//	go build -ldflags="-X github.com/agbru/picalc/internal/app.Version=v1.2.3 -X github.com/agbru/picalc/internal/app.Commit=abc123 -X github.com/agbru/picalc/internal/app.BuildDate=2025-01-01T00:00:00Z" ./cmd/picalc
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash.
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// HasVersionFlag checks if any argument is a version flag, so --version
// works regardless of the other flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion outputs version information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "picalc %s\n", Version)
	fmt.Fprintf(out, "  Commit:     %s\n", Commit)
	fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
