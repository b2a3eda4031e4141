package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func practiceColumns() []string {
	return []string{"id", "url", "name", "website", "socials", "email", "address", "contact", "description", "years_active", "staff", "awards", "source", "created_at", "updated_at"}
}

func practiceRow(id uuid.UUID, url, name string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(practiceColumns()).
		AddRow(id, url, name, nil, []byte(`[]`), nil, nil, nil, nil, nil, nil, []byte(`[]`), "architect_directory", now, now)
}

func TestUpsert_KeyedByURL(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	url := "https://architectdirectory.co.uk/practice/example-studio"

	mock.ExpectQuery(`INSERT INTO practices(.|\n)*ON CONFLICT \(url\) DO UPDATE`).
		WithArgs(url, "Example Studio", pgxmock.AnyArg(), []byte(`[]`), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), []byte(`[]`), "architect_directory").
		WillReturnRows(practiceRow(id, url, "Example Studio"))

	repo := New(mock)
	p, err := repo.Upsert(context.Background(), UpsertParams{URL: url, Name: "Example Studio"})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, url, p.URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_DefaultsSource(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	url := "https://architectdirectory.co.uk/practice/other-studio"

	mock.ExpectQuery("INSERT INTO practices").
		WithArgs(url, "Other Studio", pgxmock.AnyArg(), []byte(`[]`), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), []byte(`[]`), "architect_directory").
		WillReturnRows(practiceRow(id, url, "Other Studio"))

	repo := New(mock)
	_, err = repo.Upsert(context.Background(), UpsertParams{URL: url, Name: "Other Studio", Source: ""})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM practices WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := New(mock)
	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_SearchFilterAndPaging(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM practices WHERE TRUE AND \(name ILIKE`).
		WithArgs("%london%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(31))
	mock.ExpectQuery(`ORDER BY name ASC(.|\n)*LIMIT \$2 OFFSET \$3`).
		WithArgs("%london%", 25, 25).
		WillReturnRows(practiceRow(id, "https://architectdirectory.co.uk/practice/london-studio", "London Studio"))

	repo := New(mock)
	items, total, err := repo.List(context.Background(), ListParams{Search: "london", Offset: 25, Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 31, total)
	require.Len(t, items, 1)
	assert.Equal(t, "London Studio", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWithEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM practices WHERE email IS NOT NULL`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	repo := New(mock)
	n, err := repo.CountWithEmail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}
