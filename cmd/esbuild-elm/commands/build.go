package commands

import (
	"path/filepath"

	"github.com/phenax/esbuild-plugin-elm/internal/app"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entry...]",
		Short: "Bundle entry points, compiling imported Elm modules",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonLogs, _ := cmd.Flags().GetBool("json-logs")
			verbose, _ := cmd.Flags().GetBool("verbose")
			c.app.ConfigureLogging(jsonLogs, verbose)

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath,
				Override: func(cfg *domain.BuildConfig) {
					applyFlags(cmd, args, cfg)
				},
			})
		},
	}

	flags := cmd.Flags()
	flags.StringP("outfile", "o", "", "Write the bundle to this file")
	flags.String("outdir", "", "Write output files to this directory")
	flags.Bool("minify", false, "Minify the output")
	flags.Bool("sourcemap", false, "Emit linked source maps")
	flags.BoolP("watch", "w", false, "Rebuild when files change")
	flags.Bool("optimize", false, "Compile Elm with --optimize")
	flags.Bool("debug", false, "Compile Elm with --debug")
	flags.String("path-to-elm", "", "Path to the elm binary")
	flags.String("cwd", "", "Directory elm make runs in")
	flags.BoolP("verbose", "v", false, "Log cache decisions and compiler output")
	flags.Bool("clear-on-watch", false, "Clear the terminal before each rebuild")
	flags.String("cache-dir", "", "Persist the compilation cache in this directory")
	flags.String("fingerprint", "", `Change detection strategy: "content" or "mtime"`)

	return cmd
}

// applyFlags overrides configuration values with the flags set on the
// command line. Paths given as flags are relative to the working directory.
//
//nolint:cyclop // one branch per flag
func applyFlags(cmd *cobra.Command, args []string, cfg *domain.BuildConfig) {
	flags := cmd.Flags()

	if len(args) > 0 {
		cfg.EntryPoints = make([]string, len(args))
		for i, arg := range args {
			cfg.EntryPoints[i] = absFlag(arg)
		}
	}
	if flags.Changed("outfile") {
		v, _ := flags.GetString("outfile")
		cfg.Outfile = absFlag(v)
	}
	if flags.Changed("outdir") {
		v, _ := flags.GetString("outdir")
		cfg.Outdir = absFlag(v)
	}
	if flags.Changed("minify") {
		cfg.Minify, _ = flags.GetBool("minify")
	}
	if flags.Changed("sourcemap") {
		cfg.Sourcemap, _ = flags.GetBool("sourcemap")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	if flags.Changed("optimize") {
		cfg.Elm.Optimize, _ = flags.GetBool("optimize")
	}
	if flags.Changed("debug") {
		cfg.Elm.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("path-to-elm") {
		v, _ := flags.GetString("path-to-elm")
		cfg.Elm.PathToElm = absFlag(v)
	}
	if flags.Changed("cwd") {
		v, _ := flags.GetString("cwd")
		cfg.Elm.Cwd = absFlag(v)
	}
	if flags.Changed("verbose") {
		cfg.Elm.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("clear-on-watch") {
		cfg.Elm.ClearOnWatch, _ = flags.GetBool("clear-on-watch")
	}
	if flags.Changed("cache-dir") {
		v, _ := flags.GetString("cache-dir")
		cfg.Elm.CacheDir = absFlag(v)
	}
	if flags.Changed("fingerprint") {
		v, _ := flags.GetString("fingerprint")
		cfg.Elm.Fingerprint = domain.FingerprintStrategy(v)
	}
}

func absFlag(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
