package search

import (
	"time"

	"github.com/kailas-cloud/tiermatch/internal/domain/match"
)

// Classifier assigns a match tier to a normalized candidate.
type Classifier interface {
	Classify(queryTokens, candidateTokens []string, candidateFull, queryFull string) match.Outcome
}

// Projector builds the composite searchable text of one item.
type Projector[T any] interface {
	Text(item T) (string, error)
}

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc[T any] func(item T) (string, error)

// Text calls f(item).
func (f ProjectorFunc[T]) Text(item T) (string, error) { return f(item) }

// Recorder receives per-call search telemetry.
type Recorder interface {
	ObserveSearch(kind, status string, results int, duration time.Duration)
	ProjectionFailed(kind string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSearch(string, string, int, time.Duration) {}
func (noopRecorder) ProjectionFailed(string)                          {}
