package tiermatch

import (
	"github.com/kailas-cloud/tiermatch/internal/domain/entity"
	"github.com/kailas-cloud/tiermatch/internal/domain/match"
	"github.com/kailas-cloud/tiermatch/internal/domain/search/result"
	"github.com/kailas-cloud/tiermatch/internal/text"
	ucmatch "github.com/kailas-cloud/tiermatch/internal/usecase/match"
)

// Searchable entities.
type (
	Organization = entity.Organization
	Worker       = entity.Worker
	Dependent    = entity.Dependent
	Transaction  = entity.Transaction
)

// Result is a ranked hit. Projected results carry a Projection describing
// the nested record that matched.
type Result[T any] = result.Result[T]

// Projection describes a dependent surfaced through its worker.
type Projection = result.Projection

// ResultKind tells direct hits from projected ones.
type ResultKind = result.Kind

// Result kinds.
const (
	Direct    = result.Direct
	Projected = result.Projected
)

// MatchType is a match tier. Its numeric value is its rank; lower is better.
type MatchType = match.Type

// Match tiers in precedence order.
const (
	ExactFullMatch = match.ExactFullMatch
	ExactWordMatch = match.ExactWordMatch
	StartsWith     = match.StartsWith
	Contains       = match.Contains
	MultiWordMatch = match.MultiWordMatch
	FuzzyMatch     = match.FuzzyMatch
	PartialMatch   = match.PartialMatch
	NoMatch        = match.NoMatch
)

// Thresholds tunes the fuzzy and partial tiers.
type Thresholds = ucmatch.Thresholds

// NormalizerMode selects the text normalization strategy.
type NormalizerMode = text.Mode

// Normalizer modes.
const (
	NormalizeFull   = text.ModeFull
	NormalizeLegacy = text.ModeLegacy
)

// Normalize canonicalizes text the way the engine does in NormalizeFull mode.
func Normalize(s string) string { return text.Normalize(s) }

// Levenshtein returns the edit distance between a and b in characters.
func Levenshtein(a, b string) int { return text.Levenshtein(a, b) }
