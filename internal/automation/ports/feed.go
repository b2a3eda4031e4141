// Package ports declares the interfaces the automation context consumes from
// other contexts. Implementations live in internal/adapters.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// FeedLead is one automation feed entry: a lead with the practice contact
// fields an outreach tool needs. Stage is pre-resolved; StatusKnown is false
// when the stored status is outside the pipeline enum and the stage fell
// back to cold.
type FeedLead struct {
	LeadID      uuid.UUID
	PracticeID  uuid.UUID
	Status      string
	Stage       string
	StatusKnown bool
	Name        string
	Email       string
	Contact     *string
	Website     *string
	Address     *string
}

// FeedSource supplies feed entries. Implementations must exclude leads whose
// practice has no email and return entries in a stable order across calls.
type FeedSource interface {
	ListFeedLeads(ctx context.Context, status string, limit int) ([]FeedLead, error)
}
