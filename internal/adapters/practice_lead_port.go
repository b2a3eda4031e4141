// Package adapters contains anti-corruption layer adapters for cross-module
// communication. Each adapter translates one module's port interface onto
// another module's repository or service, so bounded contexts never import
// each other directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	"blocarch_backend/internal/leads/domain"
	leadsrepo "blocarch_backend/internal/leads/repository"
	practicesvc "blocarch_backend/internal/practices/service"
)

// PracticeLeadPort adapts the leads repository to the practices module's
// LeadPort: lead bootstrap on practice reads and status counts for the
// dashboard.
type PracticeLeadPort struct {
	repo *leadsrepo.Repository
}

func NewPracticeLeadPort(repo *leadsrepo.Repository) *PracticeLeadPort {
	return &PracticeLeadPort{repo: repo}
}

func (a *PracticeLeadPort) EnsureForPractice(ctx context.Context, practiceID uuid.UUID) (practicesvc.LeadView, error) {
	lead, err := a.repo.Ensure(ctx, practiceID)
	if err != nil {
		return practicesvc.LeadView{}, err
	}
	return practicesvc.LeadView{
		ID:           lead.ID,
		Status:       string(lead.Status),
		Stage:        string(domain.ResolveStage(lead.Status)),
		Score:        lead.Score,
		Notes:        lead.Notes,
		Tags:         lead.Tags,
		NextFollowUp: lead.NextFollowUp,
	}, nil
}

func (a *PracticeLeadPort) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts, err := a.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out, nil
}

// Compile-time check.
var _ practicesvc.LeadPort = (*PracticeLeadPort)(nil)
