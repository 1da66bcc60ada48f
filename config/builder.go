package config

import (
	"fmt"
	"sort"

	"github.com/jpalmerr/wikistore"
)

// BuildPolicies converts parsed configuration into named scoring policies.
func BuildPolicies(cfg *Config) (map[string]wikistore.Policy[wikistore.Document], error) {
	policies := make(map[string]wikistore.Policy[wikistore.Document], len(cfg.Policies))

	for _, pc := range cfg.Policies {
		p, err := BuildPolicy(pc)
		if err != nil {
			return nil, err
		}
		policies[pc.Name] = p
	}

	return policies, nil
}

// BuildPolicy converts a single PolicyConfig into a scoring policy.
func BuildPolicy(pc PolicyConfig) (wikistore.Policy[wikistore.Document], error) {
	score, err := buildScore(pc.Score)
	if err != nil {
		return nil, fmt.Errorf("policy (%s): %w", pc.Name, err)
	}

	if pc.Lowest {
		return wikistore.Negate[wikistore.Document](score), nil
	}
	return score, nil
}

// buildScore converts ScoreConfig to a score function.
func buildScore(sc ScoreConfig) (wikistore.ScoreFunc[wikistore.Document], error) {
	switch sc.Type {
	case "field":
		return wikistore.FieldScore(sc.Field), nil
	case "ratio":
		return wikistore.Ratio(wikistore.FieldScore(sc.Numerator), wikistore.FieldScore(sc.Denominator)), nil
	case "weighted":
		// sort fields for deterministic ordering
		fields := make([]string, 0, len(sc.Weights))
		for f := range sc.Weights {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		terms := make([]wikistore.Term[wikistore.Document], 0, len(fields))
		for _, f := range fields {
			terms = append(terms, wikistore.Term[wikistore.Document]{
				Score:  wikistore.FieldScore(f),
				Weight: sc.Weights[f],
			})
		}
		return wikistore.Weighted(terms...), nil
	default:
		return nil, fmt.Errorf("unknown score type %q", sc.Type)
	}
}

// BuildDocuments converts the configured records into documents, in file order.
//
// Field maps are shared with the Config, not copied.
func BuildDocuments(cfg *Config) []wikistore.Document {
	docs := make([]wikistore.Document, 0, len(cfg.Records))
	for _, rc := range cfg.Records {
		docs = append(docs, wikistore.Document{ID: rc.ID, Fields: rc.Fields})
	}
	return docs
}
