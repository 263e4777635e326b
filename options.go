package tiermatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tiermatch/internal/text"
	ucmatch "github.com/kailas-cloud/tiermatch/internal/usecase/match"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	thresholds          ucmatch.Thresholds
	minQueryLength      int
	dependentRankOffset int
	limit               int
	mode                text.Mode

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithThresholds sets the fuzzy edit-distance and partial coverage thresholds.
// Non-positive values fall back to the defaults.
func WithThresholds(maxEditDistance int, minCoverage float64) Option {
	return optionFunc(func(c *engineConfig) {
		c.thresholds = Thresholds{MaxEditDistance: maxEditDistance, MinCoverage: minCoverage}
	})
}

// WithMinQueryLength sets the minimum trimmed query length in characters.
func WithMinQueryLength(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.minQueryLength = n
	})
}

// WithDependentRankOffset sets how far below its tier a dependent hit ranks.
// The offset must be at least 7 so dependents never outrank direct hits.
func WithDependentRankOffset(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.dependentRankOffset = n
	})
}

// WithLimit caps the number of results per search. Zero disables the cap.
func WithLimit(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.limit = n
	})
}

// WithNormalizerMode selects the text normalization strategy.
func WithNormalizerMode(m NormalizerMode) Option {
	return optionFunc(func(c *engineConfig) {
		c.mode = m
	})
}

// WithLogger sets a structured logger. Skipped entities are logged at warn
// level, failed searches at error level.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers search metrics on the given registerer.
// Registering the same registerer twice is safe.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
