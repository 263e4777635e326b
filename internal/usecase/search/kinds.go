package search

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/tiermatch/internal/domain"
	"github.com/kailas-cloud/tiermatch/internal/domain/entity"
	"github.com/kailas-cloud/tiermatch/internal/domain/search/result"
)

// Entity kind names used in logs and metrics.
const (
	KindOrganization = "organization"
	KindWorker       = "worker"
	KindTransaction  = "transaction"
)

// SearchOrganizations ranks organizations by name, tax ids, address and contact person.
// Ties are ordered by organization name.
func (s *Service) SearchOrganizations(
	orgs []*entity.Organization, query string,
) []result.Result[*entity.Organization] {
	return Run(s, OrganizationDescriptor(), orgs, query)
}

// SearchWorkers ranks workers by name, passport and division, and surfaces
// matching active dependents as projected hits ranked DependentRankOffset
// below their own tier. Ties are ordered by display name.
func (s *Service) SearchWorkers(
	workers []*entity.Worker, query string,
) []result.Result[*entity.Worker] {
	return Run(s, s.WorkerDescriptor(), workers, query)
}

// SearchTransactions ranks transactions by number, organization name and notes.
// Ties are ordered by date, most recent first.
func (s *Service) SearchTransactions(
	txns []*entity.Transaction, query string,
) []result.Result[*entity.Transaction] {
	return Run(s, TransactionDescriptor(), txns, query)
}

// OrganizationDescriptor describes organizations to the ranker.
func OrganizationDescriptor() Descriptor[*entity.Organization] {
	return Descriptor[*entity.Organization]{
		Kind: KindOrganization,
		Project: ProjectorFunc[*entity.Organization](func(o *entity.Organization) (string, error) {
			if o == nil {
				return "", domain.ErrNilEntity
			}
			return joinFields(o.Name, o.TaxID, o.SecondaryTaxID, o.Address, o.ContactPerson), nil
		}),
		Compare: func(a, b *result.Result[*entity.Organization]) int {
			return strings.Compare(a.Item().Name, b.Item().Name)
		},
	}
}

// WorkerDescriptor describes workers and their dependents to the ranker.
func (s *Service) WorkerDescriptor() Descriptor[*entity.Worker] {
	return Descriptor[*entity.Worker]{
		Kind: KindWorker,
		Project: ProjectorFunc[*entity.Worker](func(w *entity.Worker) (string, error) {
			if w == nil {
				return "", domain.ErrNilEntity
			}
			return joinFields(w.Name, w.Passport, w.Division), nil
		}),
		Expand:  s.expandDependents,
		Compare: compareWorkerDisplay,
	}
}

func (s *Service) expandDependents(w *entity.Worker, q Query) ([]result.Result[*entity.Worker], error) {
	var hits []result.Result[*entity.Worker]
	for _, d := range w.ActiveDependents() {
		o := s.Classify(q, joinFields(d.Name, d.Passport))
		if !o.Matched {
			continue
		}
		hits = append(hits, result.NewProjected(w, o, projectDependent(w, d), s.cfg.DependentRankOffset))
	}
	return hits, nil
}

func projectDependent(w *entity.Worker, d entity.Dependent) result.Projection {
	rel := d.Relationship
	if rel == "" {
		rel = "dependent"
	}
	return result.Projection{
		Label:        fmt.Sprintf("%s (%s of %s)", d.Name, rel, w.Name),
		Name:         d.Name,
		Relationship: d.Relationship,
		Passport:     d.Passport,
		Gender:       d.Gender,
		Parent:       w.Name,
	}
}

// WorkerDisplayName returns the projection label for projected hits and the
// worker name otherwise.
func WorkerDisplayName(r *result.Result[*entity.Worker]) string {
	if p, ok := r.Projection(); ok {
		return p.Label
	}
	return r.Item().Name
}

func compareWorkerDisplay(a, b *result.Result[*entity.Worker]) int {
	return strings.Compare(WorkerDisplayName(a), WorkerDisplayName(b))
}

// TransactionDescriptor describes transactions to the ranker.
func TransactionDescriptor() Descriptor[*entity.Transaction] {
	return Descriptor[*entity.Transaction]{
		Kind: KindTransaction,
		Project: ProjectorFunc[*entity.Transaction](func(t *entity.Transaction) (string, error) {
			if t == nil {
				return "", domain.ErrNilEntity
			}
			return joinFields(t.Number, t.OrganizationName(), t.Notes), nil
		}),
		Compare: func(a, b *result.Result[*entity.Transaction]) int {
			return b.Item().Date.Compare(a.Item().Date)
		},
	}
}
