package tiermatch

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/tiermatch/internal/domain/search/result"
	"github.com/kailas-cloud/tiermatch/internal/metrics"
	ucmatch "github.com/kailas-cloud/tiermatch/internal/usecase/match"
	searchuc "github.com/kailas-cloud/tiermatch/internal/usecase/search"
)

// KindCustom labels logs and metrics of generic Search calls.
const KindCustom = "custom"

// minDependentRankOffset keeps projected hits below the weakest direct tier.
const minDependentRankOffset = int(PartialMatch)

// Engine is the tiermatch entry point. It is safe for concurrent use.
type Engine struct {
	svc *searchuc.Service
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		thresholds: ucmatch.DefaultThresholds(),
		mode:       NormalizeFull,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var rec searchuc.Recorder
	if cfg.metricsReg != nil {
		if err := metrics.Register(cfg.metricsReg); err != nil {
			return nil, fmt.Errorf("tiermatch: %w", err)
		}
		rec = metrics.SearchRecorder{}
	}

	svc := searchuc.New(
		ucmatch.New(cfg.thresholds),
		searchuc.Config{
			MinQueryLength:      cfg.minQueryLength,
			DependentRankOffset: cfg.dependentRankOffset,
			Limit:               cfg.limit,
			Normalize:           cfg.mode.Normalizer(),
		},
		cfg.logger,
		rec,
	)
	return &Engine{svc: svc}, nil
}

func (c *engineConfig) validate() error {
	if !c.mode.IsValid() {
		return fmt.Errorf("tiermatch: unknown normalizer mode %q", c.mode)
	}
	if c.thresholds.MinCoverage > 1 {
		return fmt.Errorf("tiermatch: min coverage must be at most 1, got %g", c.thresholds.MinCoverage)
	}
	if c.limit < 0 {
		return errors.New("tiermatch: limit must not be negative")
	}
	if c.dependentRankOffset != 0 && c.dependentRankOffset < minDependentRankOffset {
		return fmt.Errorf("tiermatch: dependent rank offset must be at least %d, got %d",
			minDependentRankOffset, c.dependentRankOffset)
	}
	return nil
}

// SearchOrganizations ranks organizations by name, tax ids, address and
// contact person. Ties are ordered by name.
func (e *Engine) SearchOrganizations(orgs []*Organization, query string) []Result[*Organization] {
	return e.svc.SearchOrganizations(orgs, query)
}

// SearchWorkers ranks workers and their active dependents. Ties are ordered
// by display name.
func (e *Engine) SearchWorkers(workers []*Worker, query string) []Result[*Worker] {
	return e.svc.SearchWorkers(workers, query)
}

// SearchTransactions ranks transactions by number, organization name and
// notes. Ties are ordered by date, most recent first.
func (e *Engine) SearchTransactions(txns []*Transaction, query string) []Result[*Transaction] {
	return e.svc.SearchTransactions(txns, query)
}

// Search ranks arbitrary items. project builds an item's searchable text;
// an item whose projection fails is skipped. compare breaks rank ties and
// may be nil to keep input order.
func Search[T any](
	e *Engine,
	items []T,
	query string,
	project func(T) (string, error),
	compare func(a, b T) int,
) []Result[T] {
	desc := searchuc.Descriptor[T]{
		Kind:    KindCustom,
		Project: searchuc.ProjectorFunc[T](project),
	}
	if compare != nil {
		desc.Compare = func(a, b *result.Result[T]) int {
			return compare(a.Item(), b.Item())
		}
	}
	return searchuc.Run(e.svc, desc, items, query)
}

// DisplayName returns the label a worker result is shown under: the
// dependent label for projected hits, the worker name otherwise.
func DisplayName(r *Result[*Worker]) string {
	return searchuc.WorkerDisplayName(r)
}
