package transport

import (
	"time"

	"github.com/google/uuid"

	"blocarch_backend/internal/practices/repository"
)

type PracticeResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	Contact     *string   `json:"contact"`
	Email       *string   `json:"email"`
	Website     *string   `json:"website"`
	YearsActive *string   `json:"years_active"`
	Staff       *string   `json:"staff"`
	Socials     []string  `json:"socials"`
	Awards      []string  `json:"awards"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeadSummary is the slice of the lead the practice views render. The full
// lead surface lives under /api/leads.
type LeadSummary struct {
	ID           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	Stage        string     `json:"outreach_stage"`
	Score        int        `json:"score"`
	Notes        string     `json:"notes"`
	Tags         []string   `json:"tags"`
	NextFollowUp *time.Time `json:"next_follow_up"`
}

type PracticeDetailResponse struct {
	PracticeResponse
	Lead LeadSummary `json:"lead"`
}

type PracticeListResponse struct {
	Items []PracticeResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Pages int                `json:"pages"`
}

type DashboardSummaryResponse struct {
	TotalPractices int            `json:"total_practices"`
	WithEmail      int            `json:"with_email"`
	LeadsByStatus  map[string]int `json:"leads_by_status"`
}

func ToPracticeResponse(p repository.Practice) PracticeResponse {
	socials := p.Socials
	if socials == nil {
		socials = []string{}
	}
	awards := p.Awards
	if awards == nil {
		awards = []string{}
	}
	return PracticeResponse{
		ID:          p.ID,
		URL:         p.URL,
		Name:        p.Name,
		Description: p.Description,
		Address:     p.Address,
		Contact:     p.Contact,
		Email:       p.Email,
		Website:     p.Website,
		YearsActive: p.YearsActive,
		Staff:       p.Staff,
		Socials:     socials,
		Awards:      awards,
		Source:      p.Source,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
