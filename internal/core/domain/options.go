package domain

import "go.trai.ch/zerr"

// Options configures the Elm plugin.
type Options struct {
	// Optimize passes --optimize to elm make. Defaults to false.
	Optimize bool `yaml:"optimize"`
	// Debug passes --debug to elm make. Defaults to false.
	Debug bool `yaml:"debug"`
	// PathToElm points at the elm binary. Relative paths resolve against Cwd.
	// Defaults to node_modules/.bin/elm, then elm on PATH.
	PathToElm string `yaml:"pathToElm"`
	// Cwd is the directory elm make runs in. Defaults to the process working directory.
	Cwd string `yaml:"cwd"`
	// Verbose logs cache decisions and compiler output.
	Verbose bool `yaml:"verbose"`
	// ClearOnWatch clears the terminal before each pass compiles.
	ClearOnWatch bool `yaml:"clearOnWatch"`
	// Fingerprint selects the change detection strategy. Defaults to "content".
	Fingerprint FingerprintStrategy `yaml:"fingerprint"`
	// CacheDir enables persisting the compilation cache between processes.
	CacheDir string `yaml:"cacheDir"`
}

// WithDefaults returns a copy with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.Fingerprint == "" {
		o.Fingerprint = FingerprintContent
	}
	return o
}

// Validate rejects option combinations elm make or the cache cannot honour.
func (o Options) Validate() error {
	if o.Optimize && o.Debug {
		return ErrOptimizeWithDebug
	}
	switch o.Fingerprint {
	case "", FingerprintContent, FingerprintModTime:
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrUnknownFingerprint, "invalid plugin options"), "fingerprint", string(o.Fingerprint))
	}
}

// CompileOptions are the per-invocation settings passed to the compiler.
type CompileOptions struct {
	Optimize  bool
	Debug     bool
	Verbose   bool
	Cwd       string
	PathToElm string
}

// CompileOptions derives compiler settings using the located executable.
func (o Options) CompileOptions(pathToElm string) CompileOptions {
	return CompileOptions{
		Optimize:  o.Optimize,
		Debug:     o.Debug,
		Verbose:   o.Verbose,
		Cwd:       o.Cwd,
		PathToElm: pathToElm,
	}
}
