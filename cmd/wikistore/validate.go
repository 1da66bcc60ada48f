package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/wikistore/config"
)

// validateCmd validates a data file without running a query.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a data file",
	Long: `Validate a wikistore data file without running a query.

This command parses the YAML, expands environment variables, and validates
all policies and records. It's useful for CI pipelines or pre-commit checks.

Exit codes:
  0 - File is valid
  1 - File is invalid (error details printed to stderr)

Example:
  wikistore validate -c data.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to data file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// count distinct ids; a repeated id replaces the earlier record
	unique := make(map[string]struct{}, len(cfg.Records))
	for _, r := range cfg.Records {
		unique[r.ID] = struct{}{}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Title:    %s\n", cfg.Title)
	fmt.Fprintf(out, "  Policy:   %s\n", cfg.Policy)
	fmt.Fprintf(out, "  Policies: %d\n", len(cfg.Policies))
	for _, p := range cfg.Policies {
		if p.Description != "" {
			fmt.Fprintf(out, "    - %s: %s\n", p.Name, p.Description)
		} else {
			fmt.Fprintf(out, "    - %s\n", p.Name)
		}
	}
	fmt.Fprintf(out, "  Records:  %d entries, %d unique ids\n", len(cfg.Records), len(unique))

	return nil
}
