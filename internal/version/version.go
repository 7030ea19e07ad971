// Package version holds the build version, set with
// -ldflags "-X blockproj/internal/version.Version=...".
package version

var Version = "dev"
