// Package commands implements the CLI commands for esbuild-elm.
package commands

import (
	"context"

	"github.com/phenax/esbuild-plugin-elm/internal/app"
	"github.com/phenax/esbuild-plugin-elm/internal/build"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/spf13/cobra"
)

const configFileHint = domain.ConfigFileName + " (default: searched upward from the working directory)"

// CLI represents the command line interface for esbuild-elm.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "esbuild-elm",
		Short:         "Bundle JavaScript that imports Elm modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to "+configFileHint)
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
