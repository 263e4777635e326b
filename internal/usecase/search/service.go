package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tiermatch/internal/domain"
	"github.com/kailas-cloud/tiermatch/internal/domain/match"
	"github.com/kailas-cloud/tiermatch/internal/domain/search/result"
	"github.com/kailas-cloud/tiermatch/internal/text"
)

// Search defaults.
const (
	DefaultMinQueryLength      = 2
	DefaultDependentRankOffset = 10
)

// Search call statuses reported to the Recorder.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Config tunes the ranker.
type Config struct {
	// MinQueryLength is the minimum trimmed query length in runes.
	MinQueryLength int
	// DependentRankOffset is added to the rank of projected nested hits.
	DependentRankOffset int
	// Limit caps the number of returned results. Zero means no cap.
	Limit int
	// Normalize canonicalizes query and candidate text. Defaults to text.Normalize.
	Normalize func(string) string
}

// Query is a normalized, tokenized search query.
type Query struct {
	Full   string
	Tokens []string
}

// Expander emits extra hits for nested records of an item.
type Expander[T any] func(item T, q Query) ([]result.Result[T], error)

// Descriptor describes one entity kind to the ranker.
type Descriptor[T any] struct {
	// Kind names the entity kind in logs and metrics.
	Kind string
	// Project builds the item's searchable text.
	Project Projector[T]
	// Expand is optional.
	Expand Expander[T]
	// Compare breaks rank ties.
	Compare func(a, b *result.Result[T]) int
}

// Service ranks in-memory collections against free-text queries.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	cls    Classifier
	cfg    Config
	logger *zap.Logger
	rec    Recorder
	newID  func() string
}

// New creates a search service. logger and rec may be nil.
func New(cls Classifier, cfg Config, logger *zap.Logger, rec Recorder) *Service {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultMinQueryLength
	}
	if cfg.DependentRankOffset <= 0 {
		cfg.DependentRankOffset = DefaultDependentRankOffset
	}
	if cfg.Normalize == nil {
		cfg.Normalize = text.Normalize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Service{cls: cls, cfg: cfg, logger: logger, rec: rec, newID: uuid.NewString}
}

// Prepare normalizes and tokenizes a raw query once per call.
func (s *Service) Prepare(raw string) Query {
	full := s.cfg.Normalize(raw)
	return Query{Full: full, Tokens: text.Tokenize(full)}
}

// Classify normalizes candidate text and classifies it against q.
func (s *Service) Classify(q Query, candidate string) match.Outcome {
	full := s.cfg.Normalize(candidate)
	return s.cls.Classify(q.Tokens, text.Tokenize(full), full, q.Full)
}

// Run classifies every item (and its nested records) against rawQuery and
// returns the matches ordered by rank, then by desc.Compare. It never fails:
// a broken item is skipped and a broken call yields an empty slice.
func Run[T any](s *Service, desc Descriptor[T], items []T, rawQuery string) (out []result.Result[T]) {
	start := time.Now()
	log := s.logger.With(zap.String("search_id", s.newID()), zap.String("kind", desc.Kind))

	defer func() {
		if rvr := recover(); rvr != nil {
			log.Error("Search failed",
				zap.Any("panic", rvr),
				zap.Stack("stacktrace"),
			)
			s.rec.ObserveSearch(desc.Kind, StatusFailed, 0, time.Since(start))
			out = []result.Result[T]{}
		}
	}()

	if utf8.RuneCountInString(strings.TrimSpace(rawQuery)) < s.cfg.MinQueryLength {
		s.rec.ObserveSearch(desc.Kind, StatusSkipped, 0, time.Since(start))
		return []result.Result[T]{}
	}

	q := s.Prepare(rawQuery)
	if len(q.Tokens) == 0 {
		s.rec.ObserveSearch(desc.Kind, StatusSkipped, 0, time.Since(start))
		return []result.Result[T]{}
	}

	out = make([]result.Result[T], 0)
	for i, item := range items {
		hits, err := scan(s, desc, item, q)
		if err != nil {
			log.Warn("Skipping entity",
				zap.Int("index", i),
				zap.Error(err),
			)
			s.rec.ProjectionFailed(desc.Kind)
			continue
		}
		out = append(out, hits...)
	}

	slices.SortStableFunc(out, func(a, b result.Result[T]) int {
		if c := cmp.Compare(a.Rank(), b.Rank()); c != 0 {
			return c
		}
		if desc.Compare == nil {
			return 0
		}
		return desc.Compare(&a, &b)
	})

	if s.cfg.Limit > 0 && len(out) > s.cfg.Limit {
		out = out[:s.cfg.Limit]
	}

	log.Debug("Search completed",
		zap.Int("candidates", len(items)),
		zap.Int("results", len(out)),
		zap.Duration("duration", time.Since(start)),
	)
	s.rec.ObserveSearch(desc.Kind, StatusOK, len(out), time.Since(start))

	return out
}

// scan classifies one item and its nested records. A panic inside a
// projector or expander is turned into an error.
func scan[T any](s *Service, desc Descriptor[T], item T, q Query) (hits []result.Result[T], err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			hits = nil
			err = fmt.Errorf("%w: %v", domain.ErrProjection, rvr)
		}
	}()

	txt, err := desc.Project.Text(item)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProjection, err)
	}

	if o := s.Classify(q, txt); o.Matched {
		hits = append(hits, result.New(item, o))
	}

	if desc.Expand != nil {
		nested, err := desc.Expand(item, q)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrProjection, err)
		}
		hits = append(hits, nested...)
	}

	return hits, nil
}

// joinFields builds composite text. Empty fields leave extra spaces that
// normalization removes.
func joinFields(fields ...string) string {
	return strings.Join(fields, " ")
}
