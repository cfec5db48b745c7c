// Package metadata implements the per-pass fingerprint table.
package metadata

import (
	"context"
	"strconv"
	"sync"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.MetadataReader = (*Reader)(nil)

// Reader memoizes fingerprints by path until the next BeginPass.
// Failed reads are not memoized.
type Reader struct {
	fingerprinter ports.Fingerprinter

	mu    sync.RWMutex
	pass  uint64
	table map[domain.ModulePath]domain.Fingerprint

	// group collapses concurrent first reads of one path within a pass.
	group singleflight.Group
}

// NewReader creates a Reader backed by fingerprinter.
func NewReader(fingerprinter ports.Fingerprinter) *Reader {
	return &Reader{
		fingerprinter: fingerprinter,
		table:         make(map[domain.ModulePath]domain.Fingerprint),
	}
}

// BeginPass discards the table. Reads still in flight from the previous
// pass complete but are not recorded.
func (r *Reader) BeginPass() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pass++
	r.table = make(map[domain.ModulePath]domain.Fingerprint)
}

// Fingerprint returns the fingerprint of path for the current pass.
func (r *Reader) Fingerprint(ctx context.Context, path domain.ModulePath) (domain.Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	fp, ok := r.table[path]
	pass := r.pass
	r.mu.RUnlock()
	if ok {
		return fp, nil
	}

	// The pass number is part of the key so a new pass never joins a read
	// that started before it.
	key := strconv.FormatUint(pass, 10) + "|" + path.String()
	v, err, _ := r.group.Do(key, func() (any, error) {
		fp, err := r.fingerprinter.Fingerprint(path.String())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read file metadata"), "path", path.String())
		}

		r.mu.Lock()
		if r.pass == pass {
			r.table[path] = fp
		}
		r.mu.Unlock()

		return fp, nil
	})
	if err != nil {
		return "", err
	}
	return v.(domain.Fingerprint), nil
}

// Len returns the number of memoized paths in the current pass.
func (r *Reader) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}
