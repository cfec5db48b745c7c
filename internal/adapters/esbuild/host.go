// Package esbuild binds the plugin façade to esbuild's Go plugin API.
package esbuild

import (
	"slices"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
)

var _ ports.Host = (*Host)(nil)

// Host adapts an esbuild PluginBuild to ports.Host.
type Host struct {
	build api.PluginBuild
}

// NewHost wraps build.
func NewHost(build api.PluginBuild) *Host {
	return &Host{build: build}
}

// NewPlugin returns an esbuild plugin whose setup hands a Host to setup.
func NewPlugin(name string, setup func(ports.Host)) api.Plugin {
	return api.Plugin{
		Name: name,
		Setup: func(build api.PluginBuild) {
			setup(NewHost(build))
		},
	}
}

// OnStart registers fn to run at the beginning of every build pass.
func (h *Host) OnStart(fn func()) {
	h.build.OnStart(func() (api.OnStartResult, error) {
		fn()
		return api.OnStartResult{}, nil
	})
}

// OnEnd registers fn to run after every build pass.
func (h *Host) OnEnd(fn func()) {
	h.build.OnEnd(func(*api.BuildResult) (api.OnEndResult, error) {
		fn()
		return api.OnEndResult{}, nil
	})
}

// OnResolve registers fn for references whose path matches filter.
// Errors are reported as resolve diagnostics for the importing file.
func (h *Host) OnResolve(filter string, fn ports.ResolveFunc) {
	h.build.OnResolve(api.OnResolveOptions{Filter: filter},
		func(args api.OnResolveArgs) (api.OnResolveResult, error) {
			result, err := fn(ports.ResolveArgs{Path: args.Path, ResolveDir: args.ResolveDir})
			if err != nil {
				return api.OnResolveResult{
					Errors: []api.Message{{Text: err.Error()}},
				}, nil
			}
			return api.OnResolveResult{
				Path:       result.Path,
				Namespace:  result.Namespace,
				WatchFiles: result.WatchFiles,
			}, nil
		})
}

// OnLoad registers fn for resolved paths in namespace matching filter.
// Successful output is loaded as JavaScript.
func (h *Host) OnLoad(filter, namespace string, fn ports.LoadFunc) {
	h.build.OnLoad(api.OnLoadOptions{Filter: filter, Namespace: namespace},
		func(args api.OnLoadArgs) (api.OnLoadResult, error) {
			output := fn(ports.LoadArgs{Path: args.Path, Namespace: args.Namespace})
			if output.HasErrors() {
				return api.OnLoadResult{Errors: toMessages(output.Errors)}, nil
			}
			contents := output.Contents
			return api.OnLoadResult{
				Contents: &contents,
				Loader:   api.LoaderJS,
			}, nil
		})
}

// Minify reports whether any minification is requested.
func (h *Host) Minify() bool {
	opts := h.build.InitialOptions
	if opts == nil {
		return false
	}
	return opts.MinifyWhitespace || opts.MinifyIdentifiers || opts.MinifySyntax
}

// AddPure appends names missing from the pure-call allowlist.
func (h *Host) AddPure(names ...string) {
	opts := h.build.InitialOptions
	if opts == nil {
		return
	}
	for _, name := range names {
		if !slices.Contains(opts.Pure, name) {
			opts.Pure = append(opts.Pure, name)
		}
	}
}

func toMessages(msgs []domain.Message) []api.Message {
	out := make([]api.Message, len(msgs))
	for i, msg := range msgs {
		out[i] = api.Message{Text: msg.Text}
	}
	return out
}
