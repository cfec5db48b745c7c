package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
)

const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SnapshotStore, error) {
			return NewStore(), nil
		},
	})
}
