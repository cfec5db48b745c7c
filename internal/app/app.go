// Package app implements the application layer for esbuild-elm.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/muesli/termenv"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/esbuild" //nolint:depguard // Wired in app layer
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"github.com/phenax/esbuild-plugin-elm/internal/plugin"
	"github.com/phenax/esbuild-plugin-elm/internal/ui/output"
	"github.com/phenax/esbuild-plugin-elm/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InputResolver
	plugins      plugin.Factory
	watchers     watcher.Factory
	logger       ports.Logger
	stderr       io.Writer
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InputResolver,
	plugins plugin.Factory,
	watchers watcher.Factory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		plugins:      plugins,
		watchers:     watchers,
		logger:       log,
		stderr:       os.Stderr,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithStderr redirects build diagnostics to w.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// WithDebounceWindow sets how long watch mode waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger to JSON output and/or debug level
// when the logger supports it.
func (a *App) ConfigureLogging(jsonLogs, verbose bool) {
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(jsonLogs)
		l.SetVerbose(verbose)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Cwd is where configuration discovery starts. Defaults to ".".
	Cwd string
	// ConfigPath selects a configuration file explicitly.
	ConfigPath string
	// Override applies command line flags on top of the loaded configuration.
	Override func(*domain.BuildConfig)
}

// Run loads the configuration and bundles the entry points once, or keeps
// rebuilding on changes when watch mode is on.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cwd := opts.Cwd
	if cwd == "" {
		cwd = "."
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Override != nil {
		opts.Override(&cfg)
	}
	if l, ok := a.logger.(configurableLogger); ok && cfg.Elm.Verbose {
		l.SetVerbose(true)
	}

	// 2. Resolve entry points
	if len(cfg.EntryPoints) == 0 {
		return domain.ErrNoEntryPoints
	}
	entries, err := a.resolver.ResolveInputs(cfg.EntryPoints, cfg.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve entry points")
	}

	// 3. Create the plugin. The cache it owns lives as long as this run.
	elm, err := a.plugins(ctx, cfg.Elm)
	if err != nil {
		return zerr.Wrap(err, "failed to set up elm plugin")
	}

	buildOpts := buildOptions(cfg, entries, elm)

	// 4. Bundle
	if cfg.Watch {
		return a.watch(ctx, cfg, buildOpts)
	}

	start := time.Now()
	result := api.Build(buildOpts)
	if !a.report(result, time.Since(start)) {
		return domain.ErrBuildFailed
	}
	return nil
}

func buildOptions(cfg domain.BuildConfig, entries []string, elm *plugin.Plugin) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPoints:       entries,
		Bundle:            cfg.BundleEnabled(),
		Outfile:           absPath(cfg.Root, cfg.Outfile),
		Outdir:            absPath(cfg.Root, cfg.Outdir),
		Write:             true,
		MinifyWhitespace:  cfg.Minify,
		MinifyIdentifiers: cfg.Minify,
		MinifySyntax:      cfg.Minify,
		LogLevel:          api.LogLevelSilent,
		AbsWorkingDir:     cfg.Root,
		Plugins:           []api.Plugin{esbuild.NewPlugin(domain.PluginName, elm.Setup)},
	}
	if cfg.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}
	return opts
}

func absPath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// report prints the pass diagnostics and reports whether it succeeded.
func (a *App) report(result api.BuildResult, took time.Duration) bool {
	color := output.ColorProfile() != termenv.Ascii

	for _, msg := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{
		Kind:  api.WarningMessage,
		Color: color,
	}) {
		_, _ = io.WriteString(a.stderr, msg)
	}

	if len(result.Errors) > 0 {
		for _, msg := range api.FormatMessages(result.Errors, api.FormatMessagesOptions{
			Kind:  api.ErrorMessage,
			Color: color,
		}) {
			_, _ = io.WriteString(a.stderr, msg)
		}
		a.logger.Warn(fmt.Sprintf("build failed with %d error(s)", len(result.Errors)))
		return false
	}

	a.logger.Info(fmt.Sprintf("%s build finished in %s", style.Check, took.Round(time.Millisecond)))
	return true
}
