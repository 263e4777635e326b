// Package match classifies a normalized candidate against a normalized query.
package match

import (
	"strings"

	dommatch "github.com/kailas-cloud/tiermatch/internal/domain/match"
	"github.com/kailas-cloud/tiermatch/internal/text"
)

// Default fuzzy fallback thresholds.
const (
	DefaultMaxEditDistance = 2
	DefaultMinCoverage     = 0.6
)

// Thresholds tunes the fuzzy fallback tier.
type Thresholds struct {
	// MaxEditDistance is the largest Levenshtein distance at which a query
	// token still covers a candidate token.
	MaxEditDistance int
	// MinCoverage is the fraction of query tokens that must be covered.
	MinCoverage float64
}

// DefaultThresholds returns the stock fuzzy thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxEditDistance: DefaultMaxEditDistance, MinCoverage: DefaultMinCoverage}
}

// Classifier assigns match tiers. It is stateless and safe for concurrent use.
type Classifier struct {
	th Thresholds
}

// New creates a classifier. Non-positive thresholds are replaced by defaults.
func New(th Thresholds) *Classifier {
	if th.MaxEditDistance <= 0 {
		th.MaxEditDistance = DefaultMaxEditDistance
	}
	if th.MinCoverage <= 0 {
		th.MinCoverage = DefaultMinCoverage
	}
	return &Classifier{th: th}
}

// Thresholds returns the effective thresholds.
func (c *Classifier) Thresholds() Thresholds { return c.th }

// Classify checks the tiers in precedence order and returns the first one
// satisfied. All inputs must already be normalized.
func (c *Classifier) Classify(
	queryTokens, candidateTokens []string, candidateFull, queryFull string,
) dommatch.Outcome {
	if len(queryTokens) == 0 {
		return dommatch.Miss()
	}

	if candidateFull == queryFull {
		return dommatch.Hit(dommatch.ExactFullMatch, candidateFull)
	}

	for _, q := range queryTokens {
		for _, ct := range candidateTokens {
			if q == ct {
				return dommatch.Hit(dommatch.ExactWordMatch, q)
			}
		}
	}

	if strings.HasPrefix(candidateFull, queryFull) {
		return dommatch.Hit(dommatch.StartsWith, queryFull)
	}

	if strings.Contains(candidateFull, queryFull) {
		return dommatch.Hit(dommatch.Contains, queryFull)
	}

	if allTokensContained(queryTokens, candidateTokens, candidateFull) {
		return dommatch.Hit(dommatch.MultiWordMatch, queryFull)
	}

	return c.fuzzy(queryTokens, candidateTokens, queryFull)
}

// allTokensContained reports whether every query token is a substring of a
// candidate token or of the full candidate text.
func allTokensContained(queryTokens, candidateTokens []string, candidateFull string) bool {
	for _, q := range queryTokens {
		if strings.Contains(candidateFull, q) {
			continue
		}
		found := false
		for _, ct := range candidateTokens {
			if strings.Contains(ct, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// fuzzy is the fallback tier. Each query token takes the first candidate
// token that contains it or lies within MaxEditDistance.
func (c *Classifier) fuzzy(queryTokens, candidateTokens []string, queryFull string) dommatch.Outcome {
	matchedWords := make([]string, 0, len(queryTokens))
	for _, q := range queryTokens {
		for _, ct := range candidateTokens {
			if strings.Contains(ct, q) || text.Levenshtein(q, ct) <= c.th.MaxEditDistance {
				matchedWords = append(matchedWords, ct)
				break
			}
		}
	}

	coverage := float64(len(matchedWords)) / float64(len(queryTokens))
	if coverage < c.th.MinCoverage {
		return dommatch.Miss()
	}

	tier := dommatch.PartialMatch
	for _, w := range matchedWords {
		if text.Levenshtein(queryFull, w) <= c.th.MaxEditDistance {
			tier = dommatch.FuzzyMatch
			break
		}
	}

	return dommatch.Hit(tier, strings.Join(matchedWords, " "))
}
