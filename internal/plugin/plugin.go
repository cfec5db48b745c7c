// Package plugin implements the resolve and load hooks that put the
// compilation cache in front of the Elm compiler.
package plugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"github.com/phenax/esbuild-plugin-elm/internal/engine/cache"
	"github.com/phenax/esbuild-plugin-elm/internal/engine/metadata"
	"github.com/phenax/esbuild-plugin-elm/internal/ui/output"
	"go.trai.ch/zerr"
)

// Deps are the collaborators a Plugin is built from.
type Deps struct {
	Locator  ports.ExecutableLocator
	Compiler ports.Compiler
	Finder   ports.DependencyFinder
	Logger   ports.Logger
	// Store persists the cache when Options.CacheDir is set. May be nil.
	Store ports.SnapshotStore
	// Fingerprinter builds the fingerprinter for the configured strategy.
	Fingerprinter func(domain.FingerprintStrategy) (ports.Fingerprinter, error)
	// Console receives the clear sequence when ClearOnWatch is set.
	// Defaults to stdout.
	Console io.Writer
}

// Plugin owns one compilation cache for the lifetime of a bundler session.
type Plugin struct {
	opts        domain.Options
	compileOpts domain.CompileOptions

	reader  *metadata.Reader
	tracker *cache.Tracker
	cache   *cache.Cache

	store        ports.SnapshotStore
	snapshotPath string
	logger       ports.Logger
	console      io.Writer

	// ctx bounds the compiler and finder processes started from hooks.
	ctx context.Context

	cleared  atomic.Bool
	mu       sync.Mutex
	baseline cache.Stats
	last     cache.Stats
}

// New validates opts, locates the elm binary and restores a persisted cache
// when one exists. A missing elm binary is fatal.
func New(ctx context.Context, opts domain.Options, deps Deps) (*Plugin, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cwd, err := absDir(opts.Cwd)
	if err != nil {
		return nil, err
	}
	opts.Cwd = cwd

	elm, err := deps.Locator.Locate(opts.PathToElm, opts.Cwd)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := deps.Fingerprinter(opts.Fingerprint)
	if err != nil {
		return nil, err
	}

	console := deps.Console
	if console == nil {
		console = os.Stdout
	}

	reader := metadata.NewReader(fingerprinter)
	p := &Plugin{
		opts:        opts,
		compileOpts: opts.CompileOptions(elm),
		reader:      reader,
		tracker:     cache.NewTracker(deps.Finder),
		cache:       cache.New(reader, deps.Compiler, deps.Logger),
		store:       deps.Store,
		logger:      deps.Logger,
		console:     console,
		ctx:         ctx,
	}

	if opts.CacheDir != "" && p.store != nil {
		dir := opts.CacheDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(opts.Cwd, dir)
		}
		p.snapshotPath = filepath.Join(dir, domain.SnapshotPrefix+p.signature()+domain.SnapshotExt)
		p.restore()
	}

	deps.Logger.Debug("elm: using " + elm)
	return p, nil
}

func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", dir)
	}
	return abs, nil
}

// signature identifies the settings that change compiler output, so
// snapshots written under different settings never mix.
func (p *Plugin) signature() string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%s\x00%s\x00%t\x00%t\x00%s",
		p.compileOpts.PathToElm, p.compileOpts.Cwd,
		p.compileOpts.Optimize, p.compileOpts.Debug, p.opts.Fingerprint)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Setup registers the hooks on host.
func (p *Plugin) Setup(host ports.Host) {
	if host.Minify() {
		host.AddPure(domain.PureFuncs...)
	}

	host.OnStart(p.beginPass)
	host.OnResolve(domain.ModuleFilter, p.resolve)
	host.OnLoad(".*", domain.Namespace, p.load)
	host.OnEnd(p.endPass)
}

func (p *Plugin) beginPass() {
	p.reader.BeginPass()
	p.cleared.Store(false)

	p.mu.Lock()
	p.baseline = p.cache.Stats()
	p.mu.Unlock()
}

func (p *Plugin) resolve(args ports.ResolveArgs) (ports.ResolveResult, error) {
	main := domain.NewModulePath(args.ResolveDir, args.Path)

	deps, err := p.tracker.FindDependencies(p.ctx, main)
	if err != nil {
		return ports.ResolveResult{}, err
	}
	p.cache.UpdateDependencies(main, deps)

	watch := make([]string, 0, len(deps)+1)
	watch = append(watch, main.String())
	for _, dep := range deps {
		watch = append(watch, dep.String())
	}

	return ports.ResolveResult{
		Path:       main.String(),
		Namespace:  domain.Namespace,
		WatchFiles: watch,
	}, nil
}

func (p *Plugin) load(args ports.LoadArgs) domain.CompileOutput {
	if p.opts.ClearOnWatch && p.cleared.CompareAndSwap(false, true) {
		output.ClearScreen(p.console)
	}
	return p.cache.Check(p.ctx, domain.ModulePathOf(args.Path), p.compileOpts)
}

func (p *Plugin) endPass() {
	p.mu.Lock()
	p.last = p.cache.Stats().Sub(p.baseline)
	pass := p.last
	p.mu.Unlock()

	if p.opts.Verbose {
		p.logger.Debug(fmt.Sprintf("elm: %d compiled, %d cached, %d failed",
			pass.Misses, pass.Hits, pass.Failures))
	}

	if pass.Misses > 0 {
		p.persist()
	}
}

// LastPass returns the cache counters of the most recent completed pass.
func (p *Plugin) LastPass() cache.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Cache exposes the underlying compilation cache.
func (p *Plugin) Cache() *cache.Cache {
	return p.cache
}
