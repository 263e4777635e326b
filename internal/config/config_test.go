package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Match.MinQueryLength != 2 {
		t.Errorf("expected MinQueryLength=2, got %d", cfg.Match.MinQueryLength)
	}
	if cfg.Match.MaxEditDistance != 2 {
		t.Errorf("expected MaxEditDistance=2, got %d", cfg.Match.MaxEditDistance)
	}
	if cfg.Match.MinCoverage != 0.6 {
		t.Errorf("expected MinCoverage=0.6, got %f", cfg.Match.MinCoverage)
	}
	if cfg.Match.DependentRankOffset != 10 {
		t.Errorf("expected DependentRankOffset=10, got %d", cfg.Match.DependentRankOffset)
	}
	if cfg.Match.Limit != 0 {
		t.Errorf("expected Limit=0, got %d", cfg.Match.Limit)
	}
	if cfg.Normalizer.Mode != "full" {
		t.Errorf("expected Mode=full, got %q", cfg.Normalizer.Mode)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Match:      MatchConfig{MinQueryLength: 3, MaxEditDistance: 1, MinCoverage: 0.8, DependentRankOffset: 20},
		Normalizer: NormalizerConfig{Mode: "legacy"},
	}
	cfg.ApplyDefaults()

	if cfg.Match.MinQueryLength != 3 {
		t.Errorf("expected MinQueryLength=3, got %d", cfg.Match.MinQueryLength)
	}
	if cfg.Match.MaxEditDistance != 1 {
		t.Errorf("expected MaxEditDistance=1, got %d", cfg.Match.MaxEditDistance)
	}
	if cfg.Match.MinCoverage != 0.8 {
		t.Errorf("expected MinCoverage=0.8, got %f", cfg.Match.MinCoverage)
	}
	if cfg.Match.DependentRankOffset != 20 {
		t.Errorf("expected DependentRankOffset=20, got %d", cfg.Match.DependentRankOffset)
	}
	if cfg.Normalizer.Mode != "legacy" {
		t.Errorf("expected Mode=legacy, got %q", cfg.Normalizer.Mode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"coverage above one", func(c *Config) { c.Match.MinCoverage = 1.5 },
			"match.min_coverage must be in (0, 1], got 1.5"},
		{"negative limit", func(c *Config) { c.Match.Limit = -1 },
			"match.limit must not be negative, got -1"},
		{"small offset", func(c *Config) { c.Match.DependentRankOffset = 3 },
			"match.dependent_rank_offset must be at least 7, got 3"},
		{"unknown mode", func(c *Config) { c.Normalizer.Mode = "stem" },
			`normalizer.mode must be "full" or "legacy", got "stem"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TIERMATCH_TEST_LIMIT", "25")

	cfg, err := Parse([]byte(`
match:
  limit: ${TIERMATCH_TEST_LIMIT}
  min_coverage: ${TIERMATCH_TEST_UNSET:-0.75}
dataset:
  path: ${TIERMATCH_TEST_UNSET:-fixtures.yaml}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Match.Limit != 25 {
		t.Errorf("expected Limit=25, got %d", cfg.Match.Limit)
	}
	if cfg.Match.MinCoverage != 0.75 {
		t.Errorf("expected MinCoverage=0.75, got %f", cfg.Match.MinCoverage)
	}
	if cfg.Dataset.Path != "fixtures.yaml" {
		t.Errorf("expected Path=fixtures.yaml, got %q", cfg.Dataset.Path)
	}
	if cfg.Match.MaxEditDistance != 2 {
		t.Errorf("defaults not applied, MaxEditDistance=%d", cfg.Match.MaxEditDistance)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("match: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("normalizer:\n  mode: stem\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("normalizer:\n  mode: legacy\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Normalizer.Mode != "legacy" {
		t.Errorf("expected Mode=legacy, got %q", cfg.Normalizer.Mode)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Normalizer.Mode != "full" {
		t.Errorf("expected Mode=full, got %q", cfg.Normalizer.Mode)
	}
}
