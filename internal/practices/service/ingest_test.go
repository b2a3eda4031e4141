package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocarch_backend/internal/practices/repository"
	"blocarch_backend/platform/logger"
)

type fakeRepo struct {
	upserts []repository.UpsertParams
}

func (f *fakeRepo) Upsert(ctx context.Context, params repository.UpsertParams) (repository.Practice, error) {
	f.upserts = append(f.upserts, params)
	return repository.Practice{ID: uuid.New(), URL: params.URL, Name: params.Name}, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Practice, error) {
	return repository.Practice{ID: id}, nil
}

func (f *fakeRepo) List(ctx context.Context, params repository.ListParams) ([]repository.Practice, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error)          { return len(f.upserts), nil }
func (f *fakeRepo) CountWithEmail(ctx context.Context) (int, error) { return 0, nil }

type fakeLeadPort struct {
	ensured []uuid.UUID
}

func (f *fakeLeadPort) EnsureForPractice(ctx context.Context, practiceID uuid.UUID) (LeadView, error) {
	f.ensured = append(f.ensured, practiceID)
	return LeadView{ID: uuid.New(), Status: "new", Stage: "cold"}, nil
}

func (f *fakeLeadPort) CountByStatus(ctx context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func TestImport_SkipsRecordsWithoutURL(t *testing.T) {
	repo := &fakeRepo{}
	leads := &fakeLeadPort{}
	svc := New(repo, leads, logger.New("test"))

	stats, err := svc.Import(context.Background(), []ImportRecord{
		{URL: "https://architectdirectory.co.uk/practice/a", Name: "A"},
		{Name: "no url, dropped"},
		{URL: "  ", Name: "blank url, dropped"},
		{URL: "https://architectdirectory.co.uk/practice/b", Name: "B"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Upserted)
	assert.Equal(t, 2, stats.Skipped)
	require.Len(t, repo.upserts, 2)
	assert.Len(t, leads.ensured, 2)
}

func TestImport_EmptyFieldsBecomeNil(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &fakeLeadPort{}, logger.New("test"))

	_, err := svc.Import(context.Background(), []ImportRecord{
		{URL: "https://architectdirectory.co.uk/practice/a", Name: "A", Email: "", Website: "https://a.example"},
	})
	require.NoError(t, err)

	require.Len(t, repo.upserts, 1)
	assert.Nil(t, repo.upserts[0].Email)
	require.NotNil(t, repo.upserts[0].Website)
	assert.Equal(t, "https://a.example", *repo.upserts[0].Website)
}
