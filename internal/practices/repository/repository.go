package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blocarch_backend/platform/db"
)

var ErrNotFound = errors.New("practice not found")

type Repository struct {
	pool db.Pool
}

func New(pool db.Pool) *Repository {
	return &Repository{pool: pool}
}

type Practice struct {
	ID          uuid.UUID
	URL         string
	Name        string
	Website     *string
	Socials     []string
	Email       *string
	Address     *string
	Contact     *string
	Description *string
	YearsActive *string
	Staff       *string
	Awards      []string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UpsertParams struct {
	URL         string
	Name        string
	Website     *string
	Socials     []string
	Email       *string
	Address     *string
	Contact     *string
	Description *string
	YearsActive *string
	Staff       *string
	Awards      []string
	Source      string
}

const practiceSelectCols = `
	id, url, name, website, socials, email, address, contact, description, years_active, staff, awards, source, created_at, updated_at`

// practiceRowScanner is satisfied by pgx.Rows and pgx.Row so scanPractice can
// be shared between single-row and multi-row queries.
type practiceRowScanner interface {
	Scan(dest ...any) error
}

// scanPractice populates a Practice from a standard SELECT row. Column order
// must match practiceSelectCols.
func scanPractice(s practiceRowScanner) (Practice, error) {
	var p Practice
	var rawSocials, rawAwards []byte
	if err := s.Scan(
		&p.ID, &p.URL, &p.Name, &p.Website, &rawSocials, &p.Email, &p.Address, &p.Contact,
		&p.Description, &p.YearsActive, &p.Staff, &rawAwards, &p.Source, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return Practice{}, err
	}
	if len(rawSocials) > 0 {
		_ = json.Unmarshal(rawSocials, &p.Socials)
	}
	if len(rawAwards) > 0 {
		_ = json.Unmarshal(rawAwards, &p.Awards)
	}
	return p, nil
}

// Upsert merges a scraped record into the store keyed by URL. A fresh URL
// inserts a new row; a known URL overwrites the descriptive fields and bumps
// updated_at while keeping the row identity (and any downstream lead) intact.
func (r *Repository) Upsert(ctx context.Context, params UpsertParams) (Practice, error) {
	socialsJSON, err := json.Marshal(emptyIfNil(params.Socials))
	if err != nil {
		return Practice{}, err
	}
	awardsJSON, err := json.Marshal(emptyIfNil(params.Awards))
	if err != nil {
		return Practice{}, err
	}

	source := params.Source
	if source == "" {
		source = "architect_directory"
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO practices (url, name, website, socials, email, address, contact, description, years_active, staff, awards, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (url) DO UPDATE SET
			name = EXCLUDED.name,
			website = EXCLUDED.website,
			socials = EXCLUDED.socials,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			contact = EXCLUDED.contact,
			description = EXCLUDED.description,
			years_active = EXCLUDED.years_active,
			staff = EXCLUDED.staff,
			awards = EXCLUDED.awards,
			source = EXCLUDED.source,
			updated_at = now()
		RETURNING`+practiceSelectCols+`
	`, params.URL, params.Name, params.Website, socialsJSON, params.Email, params.Address,
		params.Contact, params.Description, params.YearsActive, params.Staff, awardsJSON, source)

	return scanPractice(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Practice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+practiceSelectCols+`
		FROM practices WHERE id = $1
	`, id)
	p, err := scanPractice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Practice{}, ErrNotFound
	}
	return p, err
}

type ListParams struct {
	Search string
	Source string
	Staff  string
	Offset int
	Limit  int
}

// List returns a page of practices ordered by name, with the total count for
// the same filter.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Practice, int, error) {
	whereClauses := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%d OR contact ILIKE $%d OR address ILIKE $%d OR description ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, pattern)
		argIdx++
	}
	if params.Source != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, params.Source)
		argIdx++
	}
	if params.Staff != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("staff = $%d", argIdx))
		args = append(args, params.Staff)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM practices WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT`+practiceSelectCols+`
		FROM practices
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]Practice, 0)
	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Count returns the total number of practices.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM practices`).Scan(&total)
	return total, err
}

// CountWithEmail returns the number of practices with a usable email address.
func (r *Repository) CountWithEmail(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM practices WHERE email IS NOT NULL AND email <> ''`).Scan(&total)
	return total, err
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
