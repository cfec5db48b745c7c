package domain

// BuildConfig describes one bundling run of the CLI.
type BuildConfig struct {
	// Root is the directory the configuration was loaded from.
	Root string `yaml:"-"`
	// EntryPoints lists entry files or glob patterns relative to Root.
	EntryPoints []string `yaml:"entryPoints"`
	// Outfile is the bundle output path. Mutually exclusive with Outdir.
	Outfile string `yaml:"outfile"`
	// Outdir is the output directory.
	Outdir string `yaml:"outdir"`
	// Bundle inlines imports. Defaults to true.
	Bundle *bool `yaml:"bundle"`
	// Minify enables whitespace, identifier and syntax minification.
	Minify bool `yaml:"minify"`
	// Sourcemap emits linked source maps.
	Sourcemap bool `yaml:"sourcemap"`
	// Watch rebuilds on file changes.
	Watch bool `yaml:"watch"`
	// Elm holds the plugin options.
	Elm Options `yaml:"elm"`
}

// BundleEnabled reports whether bundling is on, defaulting to true.
func (c BuildConfig) BundleEnabled() bool {
	return c.Bundle == nil || *c.Bundle
}
