package ports

import "github.com/phenax/esbuild-plugin-elm/internal/core/domain"

// SnapshotStore persists compilation cache snapshots between processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Load returns the snapshot stored at path.
	// Returns nil, nil if no snapshot exists.
	Load(path string) (*domain.Snapshot, error)

	// Save atomically replaces the snapshot stored at path.
	Save(path string, snapshot domain.Snapshot) error
}
