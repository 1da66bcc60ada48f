package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/wikistore"
	"github.com/jpalmerr/wikistore/config"
	"github.com/jpalmerr/wikistore/instrument"
)

// newLogger creates a JSON logger for CLI use, tagged with a run ID.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", uuid.NewString())
}

// bestCmd prints the best records of a data file.
var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print the best records of a data file",
	Long: `Load a data file into a store and print every record tied for the top
score.

The store starts with the file's default policy. Use --policy to pick another
named policy, or --by to score by a single numeric field instead.

Example:
  wikistore best -c data.yaml
  wikistore best -c data.yaml --policy cheapest
  wikistore best -c data.yaml --by stats.defense
  wikistore best -c data.yaml --metrics`,
	RunE: runBest,
}

func init() {
	rootCmd.AddCommand(bestCmd)

	bestCmd.Flags().StringP("config", "c", "", "path to data file (required)")
	bestCmd.Flags().StringP("policy", "p", "", "named policy to rank by (default: the file's policy)")
	bestCmd.Flags().String("by", "", "rank by a numeric field path instead of a policy")
	bestCmd.Flags().Bool("metrics", false, "print store metrics after the result")
	bestCmd.Flags().BoolP("verbose", "v", false, "log store events")
	_ = bestCmd.MarkFlagRequired("config")
	bestCmd.MarkFlagsMutuallyExclusive("policy", "by")
}

func runBest(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	policies, err := config.BuildPolicies(cfg)
	if err != nil {
		return fmt.Errorf("failed to build policies: %w", err)
	}

	s, err := wikistore.New[wikistore.Document](policies[cfg.Policy],
		wikistore.WithLogger(logger),
		wikistore.WithCapacity(len(cfg.Records)),
	)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	reg := prometheus.NewRegistry()
	instrument.Attach(instrument.NewMetrics(reg, "wikistore"), s)
	instrument.LogEvents(s, logger)

	for _, doc := range config.BuildDocuments(cfg) {
		if err := s.Set(doc); err != nil {
			return fmt.Errorf("failed to store record %q: %w", doc.ID, err)
		}
	}

	logger.Info("records loaded",
		"records", s.Len(),
		"policies", len(policies),
	)

	label := cfg.Policy
	score := s.Policy().Evaluate

	policyName, _ := cmd.Flags().GetString("policy")
	field, _ := cmd.Flags().GetString("by")

	var best []wikistore.Document
	switch {
	case field != "":
		label = "field " + field
		score = wikistore.FieldScore(field)
		best = s.BestByScore(score)
	case policyName != "":
		p, ok := policies[policyName]
		if !ok {
			return fmt.Errorf("unknown policy %q (available: %s)", policyName, policyNames(policies))
		}
		if err := s.SetBestStrategy(p); err != nil {
			return err
		}
		label = policyName
		score = p.Evaluate
		best = s.Best()
	default:
		best = s.Best()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: best by %s (%d of %d records)\n", cfg.Title, label, len(best), s.Len())
	for _, doc := range best {
		fmt.Fprintf(out, "  %-20s %s\n", doc.ID, formatScore(score(doc)))
	}

	if printMetrics, _ := cmd.Flags().GetBool("metrics"); printMetrics {
		if err := writeMetrics(out, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}

// formatScore renders a score, showing unscorable records explicitly.
func formatScore(v float64) string {
	if v == wikistore.MinScore {
		return "unscored"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// policyNames returns the policy names sorted for stable error messages.
func policyNames(policies map[string]wikistore.Policy[wikistore.Document]) string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// writeMetrics writes every gathered metric family in text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
