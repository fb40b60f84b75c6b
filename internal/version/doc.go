// Package version exposes the build metadata of the alarm binaries.
//
// Version, Commit and BuildTime are injected with -ldflags -X at build time.
package version
