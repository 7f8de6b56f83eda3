// Package version holds the build version string for sp.
package version

// Version is the current release version. Overridden at build time via
// -ldflags "-X github.com/rvanmaanen/skillpath/pkg/version.Version=...".
var Version = "0.3.1"
