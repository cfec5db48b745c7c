package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// watch builds once and then rebuilds after every settled batch of changes
// until ctx is done. Each rebuild is a new pass over the same plugin, so the
// compilation cache carries across rebuilds.
func (a *App) watch(ctx context.Context, cfg domain.BuildConfig, opts api.BuildOptions) error {
	bctx, cerr := api.Context(opts)
	if cerr != nil {
		a.report(api.BuildResult{Errors: cerr.Errors}, 0)
		return domain.ErrBuildFailed
	}
	defer bctx.Dispose()

	rebuild := func() {
		start := time.Now()
		result := bctx.Rebuild()
		a.report(result, time.Since(start))
	}
	rebuild()

	w, err := a.watchers()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, cfg.Root, ignoredPaths(cfg)); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info("watching for changes in " + cfg.Root)

	pending := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		for _, path := range paths {
			a.logger.Debug("changed " + path)
		}
		select {
		case pending <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	// Event pump
	g.Go(func() error {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Rebuild loop
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-pending:
				rebuild()
			}
		}
	})

	return g.Wait()
}

// ignoredPaths lists what the bundle writes, so rebuilding never retriggers
// itself.
func ignoredPaths(cfg domain.BuildConfig) []string {
	var ignore []string
	if cfg.Outfile != "" {
		outfile := absPath(cfg.Root, cfg.Outfile)
		ignore = append(ignore, outfile, outfile+".map")
	}
	if cfg.Outdir != "" {
		if outdir := absPath(cfg.Root, cfg.Outdir); filepath.Clean(outdir) != filepath.Clean(cfg.Root) {
			ignore = append(ignore, outdir)
		}
	}
	if cfg.Elm.CacheDir != "" {
		ignore = append(ignore, absPath(cfg.Elm.Cwd, cfg.Elm.CacheDir))
	}
	return ignore
}
