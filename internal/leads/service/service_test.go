package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocarch_backend/internal/leads/domain"
	"blocarch_backend/internal/leads/repository"
	"blocarch_backend/internal/leads/transport"
	"blocarch_backend/platform/apperr"
	"blocarch_backend/platform/logger"
)

type fakeRepo struct {
	lead       repository.Lead
	lastUpdate repository.UpdateParams
	activities []repository.AddActivityParams
	notFound   bool
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	if f.notFound {
		return repository.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeRepo) GetWithPractice(ctx context.Context, id uuid.UUID) (repository.LeadWithPractice, error) {
	if f.notFound {
		return repository.LeadWithPractice{}, repository.ErrNotFound
	}
	return repository.LeadWithPractice{Lead: f.lead, PracticeName: "Example Studio"}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Lead, error) {
	if f.notFound {
		return repository.Lead{}, repository.ErrNotFound
	}
	f.lastUpdate = params
	lead := f.lead
	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.Notes != nil {
		lead.Notes = *params.Notes
	}
	if params.Score != nil {
		lead.Score = *params.Score
	}
	if params.TagsSet {
		lead.Tags = params.Tags
	}
	return lead, nil
}

func (f *fakeRepo) AddActivity(ctx context.Context, params repository.AddActivityParams) (repository.Activity, error) {
	f.activities = append(f.activities, params)
	return repository.Activity{ID: uuid.New(), LeadID: params.LeadID, Kind: params.Kind, Title: params.Title}, nil
}

func (f *fakeRepo) ListActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]repository.Activity, error) {
	return nil, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, params repository.ListByStatusParams) ([]repository.LeadWithPractice, int, error) {
	return []repository.LeadWithPractice{{Lead: f.lead, PracticeName: "Example Studio"}}, 1, nil
}

func newTestService(repo *fakeRepo) *Service {
	return New(repo, logger.New("test"))
}

func decodeUpdate(t *testing.T, body string) transport.UpdateLeadRequest {
	t.Helper()
	var req transport.UpdateLeadRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func baseLead() repository.Lead {
	return repository.Lead{ID: uuid.New(), PracticeID: uuid.New(), Status: domain.StatusNew}
}

func TestUpdate_InvalidStatusDroppedOthersApply(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	req := decodeUpdate(t, `{"status": "bogus", "notes": "left voicemail", "score": 55}`)
	resp, err := svc.Update(context.Background(), repo.lead.ID, req)
	require.NoError(t, err)

	assert.Nil(t, repo.lastUpdate.Status)
	require.NotNil(t, repo.lastUpdate.Notes)
	assert.Equal(t, "left voicemail", *repo.lastUpdate.Notes)
	require.NotNil(t, repo.lastUpdate.Score)
	assert.Equal(t, 55, *repo.lastUpdate.Score)
	assert.Equal(t, string(domain.StatusNew), resp.Status)
}

func TestUpdate_ValidStatusApplied(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	req := decodeUpdate(t, `{"status": "contacted"}`)
	resp, err := svc.Update(context.Background(), repo.lead.ID, req)
	require.NoError(t, err)

	require.NotNil(t, repo.lastUpdate.Status)
	assert.Equal(t, domain.StatusContacted, *repo.lastUpdate.Status)
	assert.Equal(t, "contacted", resp.Status)
	assert.Equal(t, "no_reply", resp.Stage)
}

func TestUpdate_ScoreBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		applied bool
		want    int
	}{
		{"lower bound", `{"score": 0}`, true, 0},
		{"upper bound", `{"score": 100}`, true, 100},
		{"below range", `{"score": -1}`, false, 0},
		{"above range", `{"score": 101}`, false, 0},
		{"not an integer", `{"score": 41.5}`, false, 0},
		{"wrong type", `{"score": "high"}`, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{lead: baseLead()}
			svc := newTestService(repo)

			_, err := svc.Update(context.Background(), repo.lead.ID, decodeUpdate(t, tc.body))
			require.NoError(t, err)

			if tc.applied {
				require.NotNil(t, repo.lastUpdate.Score)
				assert.Equal(t, tc.want, *repo.lastUpdate.Score)
			} else {
				assert.Nil(t, repo.lastUpdate.Score)
			}
		})
	}
}

func TestUpdate_TagsMustBeArray(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), repo.lead.ID, decodeUpdate(t, `{"tags": "riba"}`))
	require.NoError(t, err)
	assert.False(t, repo.lastUpdate.TagsSet)

	repo = &fakeRepo{lead: baseLead()}
	svc = newTestService(repo)
	_, err = svc.Update(context.Background(), repo.lead.ID, decodeUpdate(t, `{"tags": ["riba", "retrofit"]}`))
	require.NoError(t, err)
	assert.True(t, repo.lastUpdate.TagsSet)
	assert.Equal(t, []string{"riba", "retrofit"}, repo.lastUpdate.Tags)
}

func TestUpdate_NullNotesBecomesEmpty(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	repo.lead.Notes = "old notes"
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), repo.lead.ID, decodeUpdate(t, `{"notes": null}`))
	require.NoError(t, err)
	require.NotNil(t, repo.lastUpdate.Notes)
	assert.Equal(t, "", *repo.lastUpdate.Notes)
}

func TestUpdate_LeadNotFound(t *testing.T) {
	repo := &fakeRepo{notFound: true}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), decodeUpdate(t, `{"notes": "x"}`))
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.GetKind(err))
}

func TestAddActivity_DefaultsKind(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	err := svc.AddActivity(context.Background(), repo.lead.ID, transport.AddActivityRequest{Title: "Sent intro email"})
	require.NoError(t, err)
	require.Len(t, repo.activities, 1)
	assert.Equal(t, "note", repo.activities[0].Kind)
}

func TestAddActivity_EmptyTitleIsAccepted(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	err := svc.AddActivity(context.Background(), repo.lead.ID, transport.AddActivityRequest{})
	require.NoError(t, err)
	require.Len(t, repo.activities, 1)
	assert.Equal(t, "", repo.activities[0].Title)
	assert.Equal(t, "note", repo.activities[0].Kind)
}

func TestAddActivity_LeadNotFound(t *testing.T) {
	repo := &fakeRepo{notFound: true}
	svc := newTestService(repo)

	err := svc.AddActivity(context.Background(), uuid.New(), transport.AddActivityRequest{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.GetKind(err))
}

func TestPipeline_UnknownStatusFallsBackToNew(t *testing.T) {
	repo := &fakeRepo{lead: baseLead()}
	svc := newTestService(repo)

	resp, err := svc.Pipeline(context.Background(), "nonsense", 0)
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Status)
	assert.Equal(t, 1, resp.Page)
}
