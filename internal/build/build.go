// Package build holds build-time information.
package build

// Version is the esbuild-elm version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the revision the binary was built from, set by linker flags.
var Commit = ""
