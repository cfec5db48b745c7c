// Package fs provides file system adapters for fingerprinting, walking and
// globbing source files.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Fingerprinter = (*ContentFingerprinter)(nil)
	_ ports.Fingerprinter = (*ModTimeFingerprinter)(nil)
)

// NewFingerprinter returns the Fingerprinter for strategy.
func NewFingerprinter(strategy domain.FingerprintStrategy) (ports.Fingerprinter, error) {
	switch strategy {
	case domain.FingerprintContent, "":
		return NewContentFingerprinter(), nil
	case domain.FingerprintModTime:
		return NewModTimeFingerprinter(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFingerprint, "cannot create fingerprinter"), "fingerprint", string(strategy))
	}
}

// ContentFingerprinter fingerprints files by the XXHash of their content.
type ContentFingerprinter struct{}

// NewContentFingerprinter creates a new ContentFingerprinter.
func NewContentFingerprinter() *ContentFingerprinter {
	return &ContentFingerprinter{}
}

// Fingerprint computes the XXHash of a file's content.
func (c *ContentFingerprinter) Fingerprint(path string) (domain.Fingerprint, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return domain.Fingerprint(fmt.Sprintf("%016x", hasher.Sum64())), nil
}

// ModTimeFingerprinter fingerprints files by modification time and size.
// It never reads file content, so an edit that preserves both goes unnoticed.
type ModTimeFingerprinter struct{}

// NewModTimeFingerprinter creates a new ModTimeFingerprinter.
func NewModTimeFingerprinter() *ModTimeFingerprinter {
	return &ModTimeFingerprinter{}
}

// Fingerprint returns "<unix-nanos>:<size>" for path.
func (m *ModTimeFingerprinter) Fingerprint(path string) (domain.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	return domain.Fingerprint(fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())), nil
}
