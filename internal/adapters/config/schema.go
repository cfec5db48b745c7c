package config

import "github.com/phenax/esbuild-plugin-elm/internal/core/domain"

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

// Configfile represents the structure of the esbuild-elm.yaml configuration file.
type Configfile struct {
	Version            string `yaml:"version"`
	Root               string `yaml:"root"`
	domain.BuildConfig `yaml:",inline"`
}
