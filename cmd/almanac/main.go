// Command almanac solves the seed almanac puzzle: the lowest location of the
// listed seeds (part 1) and of the seed ranges (part 2).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "almanac",
		Short:         "Seed almanac solver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(solveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac version %s (%s)\n", version, commit)
		},
	}
}
