package plugin

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/cas"    //nolint:depguard // Wired in plugin layer
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/elm"    //nolint:depguard // Wired in plugin layer
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"     //nolint:depguard // Wired in plugin layer
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/logger" //nolint:depguard // Wired in plugin layer
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
)

// NodeID is the unique identifier for the plugin factory Graft node.
const NodeID graft.ID = "plugin.factory"

// Factory builds a Plugin for one bundler session.
type Factory func(ctx context.Context, opts domain.Options) (*Plugin, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			elm.LocatorNodeID,
			elm.CompilerNodeID,
			elm.FinderNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runFactoryNode,
	})
}

func runFactoryNode(ctx context.Context) (Factory, error) {
	locator, err := graft.Dep[ports.ExecutableLocator](ctx)
	if err != nil {
		return nil, err
	}

	compiler, err := graft.Dep[ports.Compiler](ctx)
	if err != nil {
		return nil, err
	}

	finder, err := graft.Dep[ports.DependencyFinder](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	deps := Deps{
		Locator:       locator,
		Compiler:      compiler,
		Finder:        finder,
		Logger:        log,
		Store:         store,
		Fingerprinter: fs.NewFingerprinter,
	}
	return func(ctx context.Context, opts domain.Options) (*Plugin, error) {
		return New(ctx, opts, deps)
	}, nil
}
