// Package main provides the entry point for the gitsleuth CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitsleuth/cmd/gitsleuth/commands"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "gitsleuth",
		Short: "Gitsleuth - per-author contribution attribution for git repositories",
		Long: `Gitsleuth attributes every line of a repository to the author who
last touched it, classified per language as code, comment, or blank, and
aggregates per-author insertion, deletion, and touched-file statistics
across history.

Commands:
  stats     Attribute lines or diff totals per author
  list      List commits, tags, branches, contributors, or tracked files
  clone     Clone a repository for inspection
  checkout  Check out a commit, branch, or tag`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file path")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewCloneCommand())
	rootCmd.AddCommand(commands.NewCheckoutCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitsleuth %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
