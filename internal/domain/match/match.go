// Package match defines match tiers and classification outcomes.
package match

import "fmt"

// Type is the match tier assigned to a candidate. Lower ranks are stronger.
type Type int

// Match tiers in precedence order.
const (
	ExactFullMatch Type = iota + 1
	ExactWordMatch
	StartsWith
	Contains
	MultiWordMatch
	FuzzyMatch
	PartialMatch
	NoMatch Type = 999
)

var typeNames = map[Type]string{
	ExactFullMatch: "ExactFullMatch",
	ExactWordMatch: "ExactWordMatch",
	StartsWith:     "StartsWith",
	Contains:       "Contains",
	MultiWordMatch: "MultiWordMatch",
	FuzzyMatch:     "FuzzyMatch",
	PartialMatch:   "PartialMatch",
	NoMatch:        "NoMatch",
}

// Types lists every tier from strongest to weakest.
func Types() []Type {
	return []Type{
		ExactFullMatch, ExactWordMatch, StartsWith, Contains,
		MultiWordMatch, FuzzyMatch, PartialMatch, NoMatch,
	}
}

// IsValid checks if t is one of the defined tiers.
func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// Rank returns the tier number used for ordering.
func (t Type) Rank() int { return int(t) }

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid match type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	for typ, name := range typeNames {
		if name == string(b) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown match type %q", string(b))
}

// Outcome is the classification of one candidate against one query.
type Outcome struct {
	Matched     bool
	Rank        int
	Type        Type
	MatchedText string
}

// Hit builds a matched outcome for the tier.
func Hit(t Type, matchedText string) Outcome {
	return Outcome{Matched: true, Rank: t.Rank(), Type: t, MatchedText: matchedText}
}

// Miss is the outcome for a candidate that matched no tier.
func Miss() Outcome {
	return Outcome{Rank: NoMatch.Rank(), Type: NoMatch}
}
