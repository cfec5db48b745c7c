package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	// Walker Node (Concrete implementation needed by the watcher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			return NewResolver(), nil
		},
	})
}
