// Package ports defines the core interfaces for the plugin.
package ports

import (
	"context"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
)

// Fingerprinter derives a change-detection fingerprint from a file on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint reads the current state of path.
	// Two calls on an unchanged file must return equal fingerprints.
	Fingerprint(path string) (domain.Fingerprint, error)
}

// MetadataReader memoizes fingerprints for the duration of one build pass.
type MetadataReader interface {
	// Fingerprint returns the fingerprint of path, reading the file at most once per pass.
	Fingerprint(ctx context.Context, path domain.ModulePath) (domain.Fingerprint, error)
	// BeginPass discards every memoized fingerprint.
	BeginPass()
}
