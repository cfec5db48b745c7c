// Package cas persists compilation cache snapshots on disk.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore using msgpack files.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load decodes the snapshot at path. A missing or empty file yields nil.
func (s *Store) Load(path string) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open cache snapshot"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat cache snapshot"), "path", path)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	var snap domain.Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode cache snapshot"), "path", path)
	}
	return &snap, nil
}

// Save writes snapshot to a temporary file next to path and renames it
// into place, so readers never observe a partial snapshot.
func (s *Store) Save(path string, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", dir)
	}

	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", dir)
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(&snapshot); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to encode cache snapshot"), "path", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to write cache snapshot"), "path", path)
	}
	if err := os.Chmod(tmp, domain.FilePerm); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to set snapshot permissions"), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to replace cache snapshot"), "path", path)
	}
	return nil
}
