// Package version holds the action's own version, reported in the run banner.
package version

// Version is the action release. Overridden at build time via
// -ldflags "-X github.com/NissesSenap/pyright-action/pkg/version.Version=...".
var Version = "dev"
