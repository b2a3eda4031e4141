package transport

import (
	"time"

	"github.com/google/uuid"

	"blocarch_backend/internal/leads/domain"
	"blocarch_backend/internal/leads/repository"
)

// Request DTOs

// UpdateLeadRequest carries a partial lead update. Every field is optional;
// malformed fields are dropped rather than failing the request, which is why
// no validate tags appear here.
type UpdateLeadRequest struct {
	Status       OptionalString  `json:"status"`
	Notes        OptionalString  `json:"notes"`
	Score        OptionalInt     `json:"score"`
	Tags         OptionalStrings `json:"tags"`
	NextFollowUp OptionalTime    `json:"next_follow_up"`
}

type AddActivityRequest struct {
	Kind     string         `json:"kind" validate:"omitempty,max=50"`
	Title    string         `json:"title" validate:"omitempty,max=300"`
	Body     string         `json:"body" validate:"omitempty,max=5000"`
	Metadata map[string]any `json:"metadata" validate:"-"`
}

// Response DTOs

type LeadResponse struct {
	ID           uuid.UUID  `json:"id"`
	PracticeID   uuid.UUID  `json:"practice_id"`
	Status       string     `json:"status"`
	Stage        string     `json:"outreach_stage"`
	Score        int        `json:"score"`
	Notes        string     `json:"notes"`
	Tags         []string   `json:"tags"`
	NextFollowUp *time.Time `json:"next_follow_up"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ActivityResponse struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type PracticeSummary struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Contact *string `json:"contact"`
	Website *string `json:"website"`
	Address *string `json:"address"`
	Staff   *string `json:"staff"`
}

type LeadDetailResponse struct {
	LeadResponse
	Practice   PracticeSummary    `json:"practice"`
	Activities []ActivityResponse `json:"activities"`
}

type PipelineItem struct {
	LeadResponse
	Practice PracticeSummary `json:"practice"`
}

type PipelineResponse struct {
	Status string         `json:"status"`
	Items  []PipelineItem `json:"items"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
}

func ToLeadResponse(lead repository.Lead) LeadResponse {
	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	return LeadResponse{
		ID:           lead.ID,
		PracticeID:   lead.PracticeID,
		Status:       string(lead.Status),
		Stage:        string(domain.ResolveStage(lead.Status)),
		Score:        lead.Score,
		Notes:        lead.Notes,
		Tags:         tags,
		NextFollowUp: lead.NextFollowUp,
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
	}
}

func ToActivityResponse(a repository.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Kind:      a.Kind,
		Title:     a.Title,
		Body:      a.Body,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}

func toPracticeSummary(item repository.LeadWithPractice) PracticeSummary {
	return PracticeSummary{
		Name:    item.PracticeName,
		Email:   item.PracticeEmail,
		Contact: item.PracticeContact,
		Website: item.PracticeWebsite,
		Address: item.PracticeAddress,
		Staff:   item.PracticeStaff,
	}
}

func ToLeadDetailResponse(item repository.LeadWithPractice, activities []repository.Activity) LeadDetailResponse {
	resp := LeadDetailResponse{
		LeadResponse: ToLeadResponse(item.Lead),
		Practice:     toPracticeSummary(item),
		Activities:   make([]ActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, ToActivityResponse(a))
	}
	return resp
}

func ToPipelineItem(item repository.LeadWithPractice) PipelineItem {
	return PipelineItem{
		LeadResponse: ToLeadResponse(item.Lead),
		Practice:     toPracticeSummary(item),
	}
}
