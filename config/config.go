// Package config provides YAML parsing of record datasets and scoring
// policies for the wikistore command.
//
// Example configuration:
//
//	title: Creatures
//	policy: strongest
//
//	policies:
//	  - name: strongest
//	    score: field:stats.attack
//	  - name: efficient
//	    score: ratio:stats.attack/stats.cost
//	  - name: cheapest
//	    score: field:stats.cost
//	    lowest: true
//	  - name: balanced
//	    score:
//	      type: weighted
//	      weights:
//	        stats.attack: 1
//	        stats.defense: 0.5
//
//	records:
//	  - id: wolf
//	    stats: {attack: 90, defense: 20, cost: 3}
//	  - id: rat
//	    stats: {attack: 1, defense: 1, cost: 1}
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTitle is used when the file sets no title.
const defaultTitle = "wikistore"

// Config is the root configuration structure.
//
// It maps directly to the YAML file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title labels command output. Defaults to "wikistore".
	Title string `yaml:"title"`

	// Policy names the initial policy of the store.
	// Defaults to the first entry of Policies.
	Policy string `yaml:"policy"`

	// Policies defines the named scoring policies.
	Policies []PolicyConfig `yaml:"policies"`

	// Records are loaded into the store in file order.
	Records []RecordConfig `yaml:"records"`
}

// PolicyConfig defines a single named scoring policy.
type PolicyConfig struct {
	// Name identifies the policy on the command line.
	Name string `yaml:"name"`

	// Description is free text shown by the validate command.
	Description string `yaml:"description"`

	// Score determines how a record is scored.
	// Can be shorthand ("field:stats.attack") or structured.
	Score ScoreConfig `yaml:"score"`

	// Lowest makes the lowest score win instead of the highest.
	Lowest bool `yaml:"lowest"`
}

// ScoreConfig specifies how to compute a score from a record.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	score: field:stats.attack
//	score: ratio:stats.attack/stats.cost
//
// Structured object:
//
//	score:
//	  type: weighted
//	  weights:
//	    stats.attack: 1
//	    stats.defense: 0.5
type ScoreConfig struct {
	// Type is the score type: "field", "ratio" or "weighted".
	Type string

	// Field is the dot-notation field path (for type: field).
	Field string

	// Numerator and Denominator are field paths (for type: ratio).
	Numerator   string
	Denominator string

	// Weights maps field paths to weights (for type: weighted).
	Weights map[string]float64
}

// RecordConfig is one record: a mandatory id plus arbitrary fields.
type RecordConfig struct {
	ID     string
	Fields map[string]any
}

// UnmarshalYAML implements yaml.Unmarshaler for ScoreConfig.
func (s *ScoreConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		return s.parseShorthand(str)
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Type        string             `yaml:"type"`
			Field       string             `yaml:"field"`
			Numerator   string             `yaml:"numerator"`
			Denominator string             `yaml:"denominator"`
			Weights     map[string]float64 `yaml:"weights"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Type = raw.Type
		s.Field = raw.Field
		s.Numerator = raw.Numerator
		s.Denominator = raw.Denominator
		s.Weights = raw.Weights
		return nil
	}

	return fmt.Errorf("score must be a string or object, got %v", node.Kind)
}

// parseShorthand parses score shorthand syntax.
//
// Supported formats:
//   - "field:path" → score by a numeric field
//   - "ratio:num/den" → score by num divided by den
func (s *ScoreConfig) parseShorthand(str string) error {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}

	idx := strings.Index(str, ":")
	if idx == -1 {
		return fmt.Errorf("unknown score %q (expected 'field:path' or 'ratio:num/den')", str)
	}

	s.Type = str[:idx]
	value := str[idx+1:]

	switch s.Type {
	case "field":
		s.Field = value
	case "ratio":
		num, den, ok := strings.Cut(value, "/")
		if !ok {
			return fmt.Errorf("ratio score %q must have the form 'ratio:num/den'", str)
		}
		s.Numerator = strings.TrimSpace(num)
		s.Denominator = strings.TrimSpace(den)
	default:
		return fmt.Errorf("unknown score type %q", s.Type)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for RecordConfig.
//
// The "id" key is lifted out; every other key becomes a field.
func (r *RecordConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("record must be an object, got %v", node.Kind)
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if id, ok := raw["id"]; ok {
		switch v := id.(type) {
		case string:
			r.ID = v
		case int, int64, uint64, float64:
			r.ID = fmt.Sprint(v)
		case nil:
		default:
			return fmt.Errorf("record id must be a scalar, got %T", id)
		}
		delete(raw, "id")
	}

	r.Fields = raw
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default}. The second group is
// unmatched when no default is given and empty for ${VAR:-}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
// A variable that is unset and has no default is an error.
func expandEnvVars(s string) (string, error) {
	matches := envVarPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		name := s[m[2]:m[3]]
		value, ok := os.LookupEnv(name)
		if !ok {
			if m[4] < 0 {
				return "", fmt.Errorf("environment variable %q is not set", name)
			}
			value = s[m[4]:m[5]]
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

// expandValue expands environment variables in every string nested in v.
func expandValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return expandEnvVars(val)
	case map[string]any:
		for k, item := range val {
			expanded, err := expandValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			val[k] = expanded
		}
		return val, nil
	case []any:
		for i, item := range val {
			expanded, err := expandValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			val[i] = expanded
		}
		return val, nil
	default:
		return v, nil
	}
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in record string values. Defaults are
// applied for Title and Policy.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.Policy == "" && len(cfg.Policies) > 0 {
		cfg.Policy = cfg.Policies[0].Name
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if len(c.Policies) == 0 {
		return errors.New("at least one policy must be defined")
	}

	seen := make(map[string]struct{}, len(c.Policies))
	for i := range c.Policies {
		p := &c.Policies[i]

		if p.Name == "" {
			return fmt.Errorf("policies[%d]: name is required", i)
		}
		if _, exists := seen[p.Name]; exists {
			return fmt.Errorf("policies[%d]: duplicate policy name %q", i, p.Name)
		}
		seen[p.Name] = struct{}{}

		if err := validateScore(&p.Score, fmt.Sprintf("policies[%d] (%s)", i, p.Name)); err != nil {
			return err
		}
	}

	if _, exists := seen[c.Policy]; !exists {
		return fmt.Errorf("policy %q is not defined", c.Policy)
	}

	for i := range c.Records {
		r := &c.Records[i]

		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("records[%d]: id is required", i)
		}

		for k, v := range r.Fields {
			expanded, err := expandValue(v)
			if err != nil {
				return fmt.Errorf("records[%d] (%s): %s: %w", i, r.ID, k, err)
			}
			r.Fields[k] = expanded
		}
	}

	return nil
}

// validateScore validates a score configuration.
func validateScore(s *ScoreConfig, context string) error {
	switch s.Type {
	case "":
		return fmt.Errorf("%s: score is required", context)
	case "field":
		if s.Field == "" {
			return fmt.Errorf("%s: score type 'field' requires a field", context)
		}
	case "ratio":
		if s.Numerator == "" || s.Denominator == "" {
			return fmt.Errorf("%s: score type 'ratio' requires a numerator and a denominator", context)
		}
	case "weighted":
		if len(s.Weights) == 0 {
			return fmt.Errorf("%s: score type 'weighted' requires at least one weight", context)
		}
		for field := range s.Weights {
			if field == "" {
				return fmt.Errorf("%s: weighted score has an empty field path", context)
			}
		}
	default:
		return fmt.Errorf("%s: unknown score type %q", context, s.Type)
	}

	return nil
}
