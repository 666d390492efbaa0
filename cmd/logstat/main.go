// Package main provides the entry point for the logstat CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/audi70r/logstat/cmd/logstat/commands"
	"github.com/audi70r/logstat/internal/version"
)

func main() {
	version.InitBinaryVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	g := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "logstat",
		Short: "Statistics from git log --numstat output",
		Long: `logstat parses git log --numstat text, from a repository, a saved file or
stdin, and reports per-file churn, author leaderboards and activity.

Commands:
  files      Most changed files
  authors    Author leaderboard
  commits    Parsed commits
  range      Date range and totals
  hotspots   High-risk files
  ownership  Directory ownership
  tui        Interactive browser`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "config file (default .logstat.yaml in . or $HOME)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&g.Quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(commands.NewFilesCommand(g))
	rootCmd.AddCommand(commands.NewAuthorsCommand(g))
	rootCmd.AddCommand(commands.NewCommitsCommand(g))
	rootCmd.AddCommand(commands.NewRangeCommand(g))
	rootCmd.AddCommand(commands.NewHotspotsCommand(g))
	rootCmd.AddCommand(commands.NewOwnershipCommand(g))
	rootCmd.AddCommand(commands.NewTUICommand(g))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "logstat %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
