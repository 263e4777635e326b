// Package text canonicalizes free text for matching and measures edit distance.
package text

import "strings"

var punctuation = strings.NewReplacer(".", "", ",", "", "-", " ")

// Normalize lowercases s, deletes '.' and ',', turns '-' into a space,
// collapses every whitespace run to one space and trims the result.
// Normalize is idempotent.
func Normalize(s string) string {
	s = punctuation.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLegacy behaves like Normalize but replaces double spaces in a
// single non-overlapping pass, so runs of three or more spaces survive as
// two or more. Kept for parity with fixtures produced by the older engine.
func NormalizeLegacy(s string) string {
	s = punctuation.Replace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "  ", " ")
	return strings.TrimSpace(s)
}

// Tokenize splits normalized text on single spaces and drops empty tokens.
func Tokenize(s string) []string {
	parts := strings.Split(s, " ")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Mode selects a normalization strategy.
type Mode string

// Normalizer modes.
const (
	ModeFull   Mode = "full"
	ModeLegacy Mode = "legacy"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == ModeFull || m == ModeLegacy
}

// Normalizer returns the normalization function for the mode.
// Unknown modes fall back to Normalize.
func (m Mode) Normalizer() func(string) string {
	if m == ModeLegacy {
		return NormalizeLegacy
	}
	return Normalize
}
