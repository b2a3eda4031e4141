// Package service holds the lead pipeline business logic: partial updates
// with per-field validation, the activity log, and the pipeline views.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"blocarch_backend/internal/leads/domain"
	"blocarch_backend/internal/leads/repository"
	"blocarch_backend/internal/leads/transport"
	"blocarch_backend/platform/apperr"
	"blocarch_backend/platform/logger"
)

const (
	pipelinePageSize    = 20
	detailActivityMax   = 20
	defaultActivityKind = "note"
)

// Repository is the data access surface the service needs.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	GetWithPractice(ctx context.Context, id uuid.UUID) (repository.LeadWithPractice, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Lead, error)
	AddActivity(ctx context.Context, params repository.AddActivityParams) (repository.Activity, error)
	ListActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]repository.Activity, error)
	ListByStatus(ctx context.Context, params repository.ListByStatusParams) ([]repository.LeadWithPractice, int, error)
}

type Service struct {
	repo Repository
	log  *logger.Logger
}

func New(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Update applies a partial update. Fields are validated independently:
// a malformed field is dropped and the remaining valid fields still apply,
// matching how the dashboard frontend batches edits.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateParams{}

	if req.Status.Set && req.Status.Valid {
		status := domain.Status(req.Status.Value)
		if status.IsValid() {
			params.Status = &status
		} else {
			s.log.Warn("dropping invalid status in lead update", "lead_id", id, "status", req.Status.Value)
		}
	}
	if req.Notes.Set && req.Notes.Valid {
		notes := req.Notes.Value
		params.Notes = &notes
	}
	if req.Score.Set && req.Score.Valid && req.Score.Value >= 0 && req.Score.Value <= 100 {
		score := req.Score.Value
		params.Score = &score
	}
	if req.Tags.Set && req.Tags.Valid {
		params.Tags = req.Tags.Value
		params.TagsSet = true
	}
	if req.NextFollowUp.Set && req.NextFollowUp.Valid {
		params.NextFollowUp = req.NextFollowUp.Value
		params.NextFollowUpSet = true
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	return transport.ToLeadResponse(lead), nil
}

// AddActivity appends a log entry to a lead. Kind defaults to "note"; the
// title may be empty, the append only fails when the lead does not exist.
func (s *Service) AddActivity(ctx context.Context, leadID uuid.UUID, req transport.AddActivityRequest) error {
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = defaultActivityKind
	}

	// Existence check first so a bad id yields 404 rather than a dangling
	// foreign key error.
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return err
	}

	_, err := s.repo.AddActivity(ctx, repository.AddActivityParams{
		LeadID:   leadID,
		Kind:     kind,
		Title:    req.Title,
		Body:     req.Body,
		Metadata: req.Metadata,
	})
	return err
}

// GetDetail returns a lead with its practice and recent activity timeline.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	item, err := s.repo.GetWithPractice(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadDetailResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadDetailResponse{}, err
	}

	activities, err := s.repo.ListActivities(ctx, id, detailActivityMax)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}

	return transport.ToLeadDetailResponse(item, activities), nil
}

// Pipeline returns a page of leads in one status. An unknown status falls
// back to new rather than erroring, so stale dashboard links keep working.
func (s *Service) Pipeline(ctx context.Context, statusParam string, page int) (transport.PipelineResponse, error) {
	status := domain.Status(statusParam)
	if !status.IsValid() {
		status = domain.StatusNew
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.repo.ListByStatus(ctx, repository.ListByStatusParams{
		Status: status,
		Offset: (page - 1) * pipelinePageSize,
		Limit:  pipelinePageSize,
	})
	if err != nil {
		return transport.PipelineResponse{}, err
	}

	resp := transport.PipelineResponse{
		Status: string(status),
		Items:  make([]transport.PipelineItem, 0, len(items)),
		Total:  total,
		Page:   page,
		Pages:  (total + pipelinePageSize - 1) / pipelinePageSize,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, transport.ToPipelineItem(item))
	}
	return resp, nil
}
