package ports

import "github.com/phenax/esbuild-plugin-elm/internal/core/domain"

// ConfigLoader defines the interface for loading the CLI build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An empty path searches upward from cwd
	// and falls back to defaults when no file exists.
	Load(cwd, path string) (domain.BuildConfig, error)
}
