// Package service holds the practice directory business logic: listing,
// detail with lead bootstrap, ingestion upserts, and the dashboard summary.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"blocarch_backend/internal/practices/repository"
	"blocarch_backend/internal/practices/transport"
	"blocarch_backend/platform/apperr"
	"blocarch_backend/platform/logger"
)

const listPageSize = 25

// Repository is the data access surface the service needs.
type Repository interface {
	Upsert(ctx context.Context, params repository.UpsertParams) (repository.Practice, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Practice, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.Practice, int, error)
	Count(ctx context.Context) (int, error)
	CountWithEmail(ctx context.Context) (int, error)
}

// LeadView is the slice of a lead the practice views need, pre-resolved to
// its outreach stage.
type LeadView struct {
	ID           uuid.UUID
	Status       string
	Stage        string
	Score        int
	Notes        string
	Tags         []string
	NextFollowUp *time.Time
}

// LeadPort is the anti-corruption boundary into the leads context. Reading a
// practice detail bootstraps its lead, and the dashboard aggregates counts.
type LeadPort interface {
	EnsureForPractice(ctx context.Context, practiceID uuid.UUID) (LeadView, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type Service struct {
	repo  Repository
	leads LeadPort
	log   *logger.Logger
}

func New(repo Repository, leads LeadPort, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, log: log}
}

type ListQuery struct {
	Search string
	Source string
	Staff  string
	Page   int
}

func (s *Service) List(ctx context.Context, q ListQuery) (transport.PracticeListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Search: strings.TrimSpace(q.Search),
		Source: strings.TrimSpace(q.Source),
		Staff:  strings.TrimSpace(q.Staff),
		Offset: (q.Page - 1) * listPageSize,
		Limit:  listPageSize,
	})
	if err != nil {
		return transport.PracticeListResponse{}, err
	}

	resp := transport.PracticeListResponse{
		Items: make([]transport.PracticeResponse, 0, len(items)),
		Total: total,
		Page:  q.Page,
		Pages: (total + listPageSize - 1) / listPageSize,
	}
	for _, p := range items {
		resp.Items = append(resp.Items, transport.ToPracticeResponse(p))
	}
	return resp, nil
}

// GetDetail returns a practice and its lead. The lead is created on first
// read so every practice reachable in the UI always has a pipeline entry.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.PracticeDetailResponse, error) {
	practice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.PracticeDetailResponse{}, apperr.NotFound("practice not found")
		}
		return transport.PracticeDetailResponse{}, err
	}

	lead, err := s.leads.EnsureForPractice(ctx, practice.ID)
	if err != nil {
		return transport.PracticeDetailResponse{}, err
	}

	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	return transport.PracticeDetailResponse{
		PracticeResponse: transport.ToPracticeResponse(practice),
		Lead: transport.LeadSummary{
			ID:           lead.ID,
			Status:       lead.Status,
			Stage:        lead.Stage,
			Score:        lead.Score,
			Notes:        lead.Notes,
			Tags:         tags,
			NextFollowUp: lead.NextFollowUp,
		},
	}, nil
}

func (s *Service) DashboardSummary(ctx context.Context) (transport.DashboardSummaryResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return transport.DashboardSummaryResponse{}, err
	}
	withEmail, err := s.repo.CountWithEmail(ctx)
	if err != nil {
		return transport.DashboardSummaryResponse{}, err
	}
	byStatus, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return transport.DashboardSummaryResponse{}, err
	}

	return transport.DashboardSummaryResponse{
		TotalPractices: total,
		WithEmail:      withEmail,
		LeadsByStatus:  byStatus,
	}, nil
}
