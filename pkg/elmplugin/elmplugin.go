// Package elmplugin provides an esbuild plugin that compiles imported Elm
// modules, reusing earlier compilations while neither a module nor any of
// its dependencies changed.
//
//	plugin, err := elmplugin.New(elmplugin.Options{Optimize: true})
//	if err != nil {
//		return err
//	}
//	result := api.Build(api.BuildOptions{
//		EntryPoints: []string{"src/index.js"},
//		Bundle:      true,
//		Outdir:      "dist",
//		Plugins:     []api.Plugin{plugin},
//	})
//
// The plugin keeps its cache for as long as it is used, so one plugin passed
// to api.Context serves every rebuild from the same cache.
package elmplugin

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/cas"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/elm"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/esbuild"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/logger"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/plugin"
)

// Options configures the plugin. The zero value compiles in development
// mode with the elm binary found under node_modules or on PATH.
type Options struct {
	// Optimize passes --optimize to elm make.
	Optimize bool
	// Debug passes --debug to elm make. Cannot be combined with Optimize.
	Debug bool
	// PathToElm points at the elm binary, relative to Cwd.
	PathToElm string
	// Cwd is the directory elm make runs in. Defaults to the process working directory.
	Cwd string
	// Verbose logs cache decisions and compiler output to stderr.
	Verbose bool
	// ClearOnWatch clears the terminal once per rebuild.
	ClearOnWatch bool
	// Fingerprint is "content" (default) or "mtime".
	Fingerprint string
	// CacheDir persists the cache between processes when set.
	CacheDir string
}

func (o Options) toDomain() domain.Options {
	return domain.Options{
		Optimize:     o.Optimize,
		Debug:        o.Debug,
		PathToElm:    o.PathToElm,
		Cwd:          o.Cwd,
		Verbose:      o.Verbose,
		ClearOnWatch: o.ClearOnWatch,
		Fingerprint:  domain.FingerprintStrategy(o.Fingerprint),
		CacheDir:     o.CacheDir,
	}
}

// New validates opts, locates the elm binary and returns the plugin.
func New(opts Options) (api.Plugin, error) {
	log := logger.New()
	log.SetVerbose(opts.Verbose)

	p, err := plugin.New(context.Background(), opts.toDomain(), plugin.Deps{
		Locator:       elm.NewLocator(),
		Compiler:      elm.NewCompiler(log),
		Finder:        elm.NewDependencyFinder(),
		Logger:        log,
		Store:         cas.NewStore(),
		Fingerprinter: fs.NewFingerprinter,
	})
	if err != nil {
		return api.Plugin{}, err
	}

	return esbuild.NewPlugin(domain.PluginName, p.Setup), nil
}
