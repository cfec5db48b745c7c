// Package domain contains the core value types of the Elm build plugin.
package domain

import "go.trai.ch/zerr"

var (
	// ErrExecutableNotFound is returned when the elm binary cannot be located.
	ErrExecutableNotFound = zerr.New("elm executable not found")

	// ErrEntryNotCached is returned when a module is loaded before it was resolved.
	ErrEntryNotCached = zerr.New("module has no cache entry")

	// ErrElmJSONNotFound is returned when no elm.json exists above a module.
	ErrElmJSONNotFound = zerr.New("elm.json not found")

	// ErrInvalidElmJSON is returned when elm.json cannot be parsed.
	ErrInvalidElmJSON = zerr.New("invalid elm.json")

	// ErrOptimizeWithDebug is returned when both optimize and debug are requested.
	ErrOptimizeWithDebug = zerr.New("optimize and debug cannot be enabled together")

	// ErrUnknownFingerprint is returned for an unsupported fingerprint strategy.
	ErrUnknownFingerprint = zerr.New("unknown fingerprint strategy")

	// ErrNoEntryPoints is returned when a build has nothing to bundle.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrInputNotFound is returned when an entry point pattern matches no file.
	ErrInputNotFound = zerr.New("input not found")

	// ErrBuildFailed is returned when the bundler reports errors for a pass.
	ErrBuildFailed = zerr.New("build failed")

	// ErrCompileFailed is returned when the elm compiler exits unsuccessfully
	// without printing a diagnostic.
	ErrCompileFailed = zerr.New("elm compilation failed")
)
