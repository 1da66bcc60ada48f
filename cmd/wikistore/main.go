// Package main is the entry point for the wikistore CLI.
//
// wikistore can be used either as a library (SDK) or through this binary,
// which loads records and scoring policies from a YAML file and answers
// best-of queries over them.
//
// Usage:
//
//	wikistore best -c data.yaml              # Best records under the default policy
//	wikistore best -c data.yaml -p cheapest  # Best records under a named policy
//	wikistore validate -c data.yaml          # Validate a data file
//	wikistore version                        # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "wikistore",
	Short: "Pick the best records from a dataset",
	Long: `wikistore loads keyed records into an in-memory store and selects the
best of them under a scoring policy.

Quick start:
  1. Create a data file (data.yaml)
  2. Run: wikistore best -c data.yaml

Example data file:
  policy: strongest
  policies:
    - name: strongest
      score: field:stats.attack
  records:
    - id: wolf
      stats: {attack: 90}
    - id: rat
      stats: {attack: 1}`,
	SilenceUsage: true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this wikistore binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wikistore %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
