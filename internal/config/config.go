package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tiermatch configuration.
type Config struct {
	Match      MatchConfig      `yaml:"match"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// MatchConfig holds classifier and ranker tuning.
type MatchConfig struct {
	MinQueryLength      int     `yaml:"min_query_length"`
	MaxEditDistance     int     `yaml:"max_edit_distance"`
	MinCoverage         float64 `yaml:"min_coverage"`
	DependentRankOffset int     `yaml:"dependent_rank_offset"`
	Limit               int     `yaml:"limit"` // 0 = unlimited
}

// NormalizerConfig selects the text normalization strategy.
type NormalizerConfig struct {
	Mode string `yaml:"mode"` // full (default) | legacy
}

// DatasetConfig points at the fixture file the CLI searches.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig toggles Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, substitutes ${VAR} references, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Match.MinQueryLength <= 0 {
		c.Match.MinQueryLength = 2
	}
	if c.Match.MaxEditDistance <= 0 {
		c.Match.MaxEditDistance = 2
	}
	if c.Match.MinCoverage <= 0 {
		c.Match.MinCoverage = 0.6
	}
	if c.Match.DependentRankOffset <= 0 {
		c.Match.DependentRankOffset = 10
	}
	if c.Normalizer.Mode == "" {
		c.Normalizer.Mode = "full"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Match.MinCoverage > 1 {
		return fmt.Errorf("match.min_coverage must be in (0, 1], got %g", c.Match.MinCoverage)
	}
	if c.Match.Limit < 0 {
		return fmt.Errorf("match.limit must not be negative, got %d", c.Match.Limit)
	}
	// Direct tiers top out at 7, so a smaller offset would let a dependent
	// outrank a direct hit of the same tier.
	if c.Match.DependentRankOffset < 7 {
		return fmt.Errorf("match.dependent_rank_offset must be at least 7, got %d", c.Match.DependentRankOffset)
	}
	switch c.Normalizer.Mode {
	case "full", "legacy":
		// ok
	default:
		return fmt.Errorf("normalizer.mode must be \"full\" or \"legacy\", got %q", c.Normalizer.Mode)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
