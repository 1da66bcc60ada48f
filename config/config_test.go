package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_MinimalConfig(t *testing.T) {
	yaml := `
policies:
  - name: strongest
    score: field:attack
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Title != "wikistore" {
		t.Errorf("Title = %q, want %q", cfg.Title, "wikistore")
	}
	if cfg.Policy != "strongest" {
		t.Errorf("Policy = %q, want %q", cfg.Policy, "strongest")
	}
	if len(cfg.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(cfg.Records))
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Creatures
policy: efficient

policies:
  - name: strongest
    description: highest attack
    score: field:stats.attack
  - name: efficient
    score: ratio:stats.attack / stats.cost
  - name: cheapest
    score: field:stats.cost
    lowest: true
  - name: balanced
    score:
      type: weighted
      weights:
        stats.attack: 1
        stats.defense: 0.5

records:
  - id: wolf
    kind: beast
    stats: {attack: 90, defense: 20, cost: 3}
  - id: 42
    stats: {attack: 1}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Creatures" {
		t.Errorf("Title = %q, want Creatures", cfg.Title)
	}
	if cfg.Policy != "efficient" {
		t.Errorf("Policy = %q, want efficient", cfg.Policy)
	}
	if len(cfg.Policies) != 4 {
		t.Fatalf("len(Policies) = %d, want 4", len(cfg.Policies))
	}

	strongest := cfg.Policies[0]
	if strongest.Description != "highest attack" {
		t.Errorf("Policies[0].Description = %q", strongest.Description)
	}
	if strongest.Score.Type != "field" || strongest.Score.Field != "stats.attack" {
		t.Errorf("Policies[0].Score = %+v", strongest.Score)
	}

	efficient := cfg.Policies[1].Score
	if efficient.Type != "ratio" || efficient.Numerator != "stats.attack" || efficient.Denominator != "stats.cost" {
		t.Errorf("Policies[1].Score = %+v", efficient)
	}

	if !cfg.Policies[2].Lowest {
		t.Error("Policies[2].Lowest = false, want true")
	}

	balanced := cfg.Policies[3].Score
	if balanced.Type != "weighted" || balanced.Weights["stats.defense"] != 0.5 {
		t.Errorf("Policies[3].Score = %+v", balanced)
	}

	if len(cfg.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(cfg.Records))
	}
	wolf := cfg.Records[0]
	if wolf.ID != "wolf" {
		t.Errorf("Records[0].ID = %q, want wolf", wolf.ID)
	}
	if _, ok := wolf.Fields["id"]; ok {
		t.Error("Records[0].Fields still holds id")
	}
	if wolf.Fields["kind"] != "beast" {
		t.Errorf("Records[0].Fields[kind] = %v, want beast", wolf.Fields["kind"])
	}
	if cfg.Records[1].ID != "42" {
		t.Errorf("Records[1].ID = %q, want 42", cfg.Records[1].ID)
	}
}

func TestParse_StructuredScore(t *testing.T) {
	yaml := `
policies:
  - name: a
    score:
      type: field
      field: attack
  - name: b
    score:
      type: ratio
      numerator: attack
      denominator: cost
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Policies[0].Score.Field != "attack" {
		t.Errorf("Policies[0].Score.Field = %q, want attack", cfg.Policies[0].Score.Field)
	}
	if cfg.Policies[1].Score.Denominator != "cost" {
		t.Errorf("Policies[1].Score.Denominator = %q, want cost", cfg.Policies[1].Score.Denominator)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			yaml:    "policies: [",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no policies",
			yaml:    "records: []",
			wantErr: "at least one policy",
		},
		{
			name: "missing policy name",
			yaml: `
policies:
  - score: field:attack
`,
			wantErr: "policies[0]: name is required",
		},
		{
			name: "duplicate policy name",
			yaml: `
policies:
  - name: a
    score: field:attack
  - name: a
    score: field:cost
`,
			wantErr: "duplicate policy name",
		},
		{
			name: "missing score",
			yaml: `
policies:
  - name: a
`,
			wantErr: "score is required",
		},
		{
			name: "unknown shorthand",
			yaml: `
policies:
  - name: a
    score: attack
`,
			wantErr: "unknown score",
		},
		{
			name: "unknown shorthand type",
			yaml: `
policies:
  - name: a
    score: sum:attack
`,
			wantErr: "unknown score type",
		},
		{
			name: "ratio without slash",
			yaml: `
policies:
  - name: a
    score: ratio:attack
`,
			wantErr: "ratio:num/den",
		},
		{
			name: "ratio missing denominator",
			yaml: `
policies:
  - name: a
    score:
      type: ratio
      numerator: attack
`,
			wantErr: "requires a numerator and a denominator",
		},
		{
			name: "field missing path",
			yaml: `
policies:
  - name: a
    score:
      type: field
`,
			wantErr: "requires a field",
		},
		{
			name: "weighted without weights",
			yaml: `
policies:
  - name: a
    score:
      type: weighted
`,
			wantErr: "at least one weight",
		},
		{
			name: "structured unknown type",
			yaml: `
policies:
  - name: a
    score:
      type: median
`,
			wantErr: "unknown score type",
		},
		{
			name: "score as list",
			yaml: `
policies:
  - name: a
    score: [field, attack]
`,
			wantErr: "score must be a string or object",
		},
		{
			name: "undefined default policy",
			yaml: `
policy: missing
policies:
  - name: a
    score: field:attack
`,
			wantErr: `policy "missing" is not defined`,
		},
		{
			name: "record without id",
			yaml: `
policies:
  - name: a
    score: field:attack
records:
  - attack: 5
`,
			wantErr: "records[0]: id is required",
		},
		{
			name: "record with blank id",
			yaml: `
policies:
  - name: a
    score: field:attack
records:
  - id: wolf
  - id: "  "
`,
			wantErr: "records[1]: id is required",
		},
		{
			name: "record not a map",
			yaml: `
policies:
  - name: a
    score: field:attack
records:
  - wolf
`,
			wantErr: "record must be an object",
		},
		{
			name: "record with list id",
			yaml: `
policies:
  - name: a
    score: field:attack
records:
  - id: [a, b]
`,
			wantErr: "record id must be a scalar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_EnvVarExpansion(t *testing.T) {
	t.Setenv("WIKISTORE_TEST_KIND", "beast")

	yaml := `
policies:
  - name: a
    score: field:attack
records:
  - id: wolf
    kind: ${WIKISTORE_TEST_KIND}
    habitat: ${WIKISTORE_TEST_UNSET:-forest}
    tags: ["${WIKISTORE_TEST_KIND}", plain]
    stats:
      note: "${WIKISTORE_TEST_KIND} stats"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	fields := cfg.Records[0].Fields
	if fields["kind"] != "beast" {
		t.Errorf("kind = %v, want beast", fields["kind"])
	}
	if fields["habitat"] != "forest" {
		t.Errorf("habitat = %v, want forest", fields["habitat"])
	}
	tags, _ := fields["tags"].([]any)
	if len(tags) != 2 || tags[0] != "beast" {
		t.Errorf("tags = %v, want [beast plain]", fields["tags"])
	}
	stats, _ := fields["stats"].(map[string]any)
	if stats["note"] != "beast stats" {
		t.Errorf("stats.note = %v, want %q", stats["note"], "beast stats")
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	yaml := `
policies:
  - name: a
    score: field:attack
records:
  - id: wolf
    kind: ${WIKISTORE_TEST_DEFINITELY_UNSET}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for unset variable, got nil")
	}
	if !strings.Contains(err.Error(), "records[0] (wolf): kind") {
		t.Errorf("error should locate the field, got: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("WIKISTORE_TEST_A", "alpha")
	t.Setenv("WIKISTORE_TEST_EMPTY", "")

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"no vars", "plain", "plain", false},
		{"set var", "${WIKISTORE_TEST_A}", "alpha", false},
		{"embedded", "x-${WIKISTORE_TEST_A}-y", "x-alpha-y", false},
		{"default unused", "${WIKISTORE_TEST_A:-beta}", "alpha", false},
		{"default used", "${WIKISTORE_TEST_NOPE:-beta}", "beta", false},
		{"empty default", "${WIKISTORE_TEST_NOPE:-}", "", false},
		{"set but empty", "${WIKISTORE_TEST_EMPTY:-beta}", "", false},
		{"unset", "${WIKISTORE_TEST_NOPE}", "", true},
		{"two vars", "${WIKISTORE_TEST_A}/${WIKISTORE_TEST_NOPE:-b}!", "alpha/b!", false},
		{"unset after set", "${WIKISTORE_TEST_A}${WIKISTORE_TEST_NOPE}", "", true},
		{"unterminated", "${WIKISTORE_TEST_A", "${WIKISTORE_TEST_A", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVars(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandEnvVars(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	content := `
policies:
  - name: a
    score: field:attack
records:
  - id: wolf
    attack: 9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(cfg.Records))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/data.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}
