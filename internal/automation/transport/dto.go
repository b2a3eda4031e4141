package transport

import (
	"time"

	"github.com/google/uuid"

	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/automation/repository"
)

// FeedPractice carries the practice contact block nested inside each feed
// entry. The outreach workflow reads name/email from here, not from the lead.
type FeedPractice struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Contact *string   `json:"contact"`
	Website *string   `json:"website"`
	Address *string   `json:"address"`
}

// FeedItemResponse is one feed entry: pipeline state on the lead, contact
// details nested under "practice". The n8n workflow depends on this exact
// shape, including the top-level "leads" key of FeedResponse.
type FeedItemResponse struct {
	LeadID        uuid.UUID    `json:"lead_id"`
	PracticeID    uuid.UUID    `json:"practice_id"`
	Status        string       `json:"status"`
	OutreachStage string       `json:"outreach_stage"`
	Practice      FeedPractice `json:"practice"`
}

type FeedResponse struct {
	Leads []FeedItemResponse `json:"leads"`
}

type RuleResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Segment      map[string]any `json:"segment"`
	Action       string         `json:"action"`
	ActionParams map[string]any `json:"action_params"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func ToFeedItemResponse(lead ports.FeedLead) FeedItemResponse {
	return FeedItemResponse{
		LeadID:        lead.LeadID,
		PracticeID:    lead.PracticeID,
		Status:        lead.Status,
		OutreachStage: lead.Stage,
		Practice: FeedPractice{
			ID:      lead.PracticeID,
			Name:    lead.Name,
			Email:   lead.Email,
			Contact: lead.Contact,
			Website: lead.Website,
			Address: lead.Address,
		},
	}
}

func ToRuleResponse(rule repository.Rule) RuleResponse {
	segment := rule.Segment
	if segment == nil {
		segment = map[string]any{}
	}
	params := rule.ActionParams
	if params == nil {
		params = map[string]any{}
	}
	return RuleResponse{
		ID:           rule.ID,
		Name:         rule.Name,
		Description:  rule.Description,
		Segment:      segment,
		Action:       rule.Action,
		ActionParams: params,
		IsActive:     rule.IsActive,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}
