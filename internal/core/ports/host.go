package ports

import "github.com/phenax/esbuild-plugin-elm/internal/core/domain"

// ResolveArgs describes a module reference the bundler asks the plugin to resolve.
type ResolveArgs struct {
	// Path is the reference as written in the importing file.
	Path string
	// ResolveDir is the directory the reference is relative to.
	ResolveDir string
}

// ResolveResult tells the bundler where a module lives and what to watch.
type ResolveResult struct {
	Path       string
	Namespace  string
	WatchFiles []string
}

// LoadArgs describes a resolved module the bundler asks the plugin to load.
type LoadArgs struct {
	Path      string
	Namespace string
}

// ResolveFunc handles a resolve request.
type ResolveFunc func(ResolveArgs) (ResolveResult, error)

// LoadFunc handles a load request. Failures are reported through the output's Errors.
type LoadFunc func(LoadArgs) domain.CompileOutput

// Host is the bundler side of the plugin boundary.
// Handlers registered here are invoked by the bundler, possibly concurrently
// for different modules.
type Host interface {
	// OnStart registers fn to run at the beginning of every build pass.
	OnStart(fn func())
	// OnResolve registers fn for references whose path matches filter.
	OnResolve(filter string, fn ResolveFunc)
	// OnLoad registers fn for resolved paths in namespace matching filter.
	OnLoad(filter, namespace string, fn LoadFunc)
	// OnEnd registers fn to run after every build pass.
	OnEnd(fn func())
	// Minify reports whether the build minifies its output.
	Minify() bool
	// AddPure appends function names to the bundler's pure-call allowlist.
	AddPure(names ...string)
}
