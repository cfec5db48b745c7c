// Package config provides the configuration loader for esbuild-elm.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the build configuration. An explicit path is resolved against
// cwd and must exist. Otherwise the nearest esbuild-elm.yaml at or above cwd
// is used, and defaults rooted at cwd apply when there is none.
func (l *Loader) Load(cwd, path string) (domain.BuildConfig, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.BuildConfig{}, zerr.Wrap(err, "failed to resolve working directory")
	}

	configPath := path
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.BuildConfig{}, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "explicit config file missing"), "path", configPath)
			}
			return domain.BuildConfig{}, zerr.With(zerr.Wrap(err, "failed to stat config file"), "path", configPath)
		}
	} else {
		configPath = findConfiguration(cwd)
		if configPath == "" {
			return domain.BuildConfig{Root: cwd, Elm: domain.Options{Cwd: cwd}}, nil
		}
	}

	return l.loadConfigfile(configPath)
}

func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return ""
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadConfigfile(configPath string) (domain.BuildConfig, error) {
	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return domain.BuildConfig{}, err
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unsupported version %q in %s, reading it as version %s",
			file.Version, configPath, SupportedVersion))
	}

	cfg := file.BuildConfig
	cfg.Root = resolveRoot(configPath, file.Root)
	cfg.Elm.Cwd = resolveDir(cfg.Root, cfg.Elm.Cwd)
	if cfg.Elm.CacheDir != "" {
		cfg.Elm.CacheDir = resolveDir(cfg.Root, cfg.Elm.CacheDir)
	}

	if err := cfg.Elm.Validate(); err != nil {
		return domain.BuildConfig{}, zerr.With(zerr.Wrap(err, "invalid elm options"), "path", configPath)
	}
	return cfg, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	return resolveDir(filepath.Dir(configPath), configuredRoot)
}

func resolveDir(base, dir string) string {
	if dir == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(base, dir))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read config file"), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, "failed to parse config file"), "path", configPath)
	}

	return nil
}
