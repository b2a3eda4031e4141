package adapters

import (
	"context"

	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/leads/domain"
	leadsrepo "blocarch_backend/internal/leads/repository"
)

// AutomationFeedSource adapts the leads repository to the automation feed
// port, resolving each lead's outreach stage on the way out.
type AutomationFeedSource struct {
	repo *leadsrepo.Repository
}

func NewAutomationFeedSource(repo *leadsrepo.Repository) *AutomationFeedSource {
	return &AutomationFeedSource{repo: repo}
}

func (a *AutomationFeedSource) ListFeedLeads(ctx context.Context, status string, limit int) ([]ports.FeedLead, error) {
	params := leadsrepo.FeedParams{Limit: limit}
	// The filter matches the stored value literally. Out-of-enum statuses
	// can exist in storage, and a filter nothing matches must yield an empty
	// feed rather than an unfiltered one.
	if status != "" {
		s := domain.Status(status)
		params.Status = &s
	}

	items, err := a.repo.ListForAutomation(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]ports.FeedLead, 0, len(items))
	for _, item := range items {
		out = append(out, ports.FeedLead{
			LeadID:      item.LeadID,
			PracticeID:  item.PracticeID,
			Status:      string(item.Status),
			Stage:       string(domain.ResolveStage(item.Status)),
			StatusKnown: item.Status.IsValid(),
			Name:        item.PracticeName,
			Email:       item.PracticeEmail,
			Contact:     item.PracticeContact,
			Website:     item.PracticeWebsite,
			Address:     item.PracticeAddress,
		})
	}
	return out, nil
}

// Compile-time check.
var _ ports.FeedSource = (*AutomationFeedSource)(nil)
