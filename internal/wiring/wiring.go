// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/cas"
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/config"
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/elm"
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/logger"
	_ "github.com/phenax/esbuild-plugin-elm/internal/adapters/watcher"
	// Register app and plugin nodes.
	_ "github.com/phenax/esbuild-plugin-elm/internal/app"
	_ "github.com/phenax/esbuild-plugin-elm/internal/plugin"
)
