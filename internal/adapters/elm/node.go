package elm

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/logger"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
)

const (
	LocatorNodeID  graft.ID = "adapter.elm.locator"
	CompilerNodeID graft.ID = "adapter.elm.compiler"
	FinderNodeID   graft.ID = "adapter.elm.finder"
)

func init() {
	graft.Register(graft.Node[ports.ExecutableLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExecutableLocator, error) {
			return NewLocator(), nil
		},
	})

	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(log), nil
		},
	})

	graft.Register(graft.Node[ports.DependencyFinder]{
		ID:        FinderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyFinder, error) {
			return NewDependencyFinder(), nil
		},
	})
}
