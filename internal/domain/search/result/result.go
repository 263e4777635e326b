package result

import "github.com/kailas-cloud/tiermatch/internal/domain/match"

// Kind tells a direct hit apart from a projected nested record.
type Kind int

const (
	// Direct means the item itself matched.
	Direct Kind = iota
	// Projected means a nested record of the item matched and is shown in its place.
	Projected
)

func (k Kind) String() string {
	if k == Projected {
		return "projected"
	}
	return "direct"
}

// Projection describes the nested record a projected hit stands for.
// It exists only for display and has no identity in the source collection.
type Projection struct {
	Label        string `json:"label"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Passport     string `json:"passport,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Parent       string `json:"parent"`
}

// Result is a single ranked search hit over items of type T.
type Result[T any] struct {
	item        T
	rank        int
	matchType   match.Type
	matchedText string
	kind        Kind
	projection  *Projection
}

// New creates a direct hit from a classification outcome.
func New[T any](item T, o match.Outcome) Result[T] {
	return Result[T]{
		item: item, rank: o.Rank, matchType: o.Type, matchedText: o.MatchedText,
		kind: Direct,
	}
}

// NewProjected creates a hit for a nested record of item. rankOffset is added
// to the nested record's own rank.
func NewProjected[T any](item T, o match.Outcome, p Projection, rankOffset int) Result[T] {
	return Result[T]{
		item: item, rank: o.Rank + rankOffset, matchType: o.Type, matchedText: o.MatchedText,
		kind: Projected, projection: &p,
	}
}

// Item returns the matched item, or the parent item for projected hits.
func (r *Result[T]) Item() T { return r.item }

// Rank returns the ordering rank. Lower is stronger.
func (r *Result[T]) Rank() int { return r.rank }

// MatchType returns the tier the hit was classified in.
func (r *Result[T]) MatchType() match.Type { return r.matchType }

// MatchedText returns the representative matched substring.
func (r *Result[T]) MatchedText() string { return r.matchedText }

// Kind returns whether the hit is direct or projected.
func (r *Result[T]) Kind() Kind { return r.kind }

// Projection returns the nested record for projected hits.
func (r *Result[T]) Projection() (Projection, bool) {
	if r.projection == nil {
		return Projection{}, false
	}
	return *r.projection, true
}
