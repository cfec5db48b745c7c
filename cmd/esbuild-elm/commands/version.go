package commands

import (
	"fmt"

	"github.com/phenax/esbuild-plugin-elm/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			version := build.Version
			if build.Commit != "" {
				version += " (" + build.Commit + ")"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "esbuild-elm version %s\n", version)
		},
	}
}
