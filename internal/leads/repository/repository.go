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
	"github.com/jackc/pgx/v5/pgconn"

	"blocarch_backend/internal/leads/domain"
	"blocarch_backend/platform/db"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool db.Pool
}

func New(pool db.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID           uuid.UUID
	PracticeID   uuid.UUID
	Status       domain.Status
	Score        int
	Notes        string
	Tags         []string
	NextFollowUp *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const leadSelectCols = `
	id, practice_id, status, score, notes, tags, next_follow_up, created_at, updated_at`

type leadRowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s leadRowScanner) (Lead, error) {
	var lead Lead
	var rawTags []byte
	if err := s.Scan(
		&lead.ID, &lead.PracticeID, &lead.Status, &lead.Score, &lead.Notes,
		&rawTags, &lead.NextFollowUp, &lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		return Lead{}, err
	}
	if len(rawTags) > 0 {
		_ = json.Unmarshal(rawTags, &lead.Tags)
	}
	return lead, nil
}

// Ensure returns the lead for a practice, creating one with status new if the
// practice has none yet. Safe to call repeatedly; the unique constraint on
// practice_id keeps the relation 1:1 under concurrent callers.
func (r *Repository) Ensure(ctx context.Context, practiceID uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (practice_id, status)
		VALUES ($1, $2)
		ON CONFLICT (practice_id) DO UPDATE SET practice_id = EXCLUDED.practice_id
		RETURNING`+leadSelectCols+`
	`, practiceID, domain.StatusNew)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+leadSelectCols+`
		FROM leads WHERE id = $1
	`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

type UpdateParams struct {
	Status          *domain.Status
	Notes           *string
	Score           *int
	Tags            []string
	TagsSet         bool
	NextFollowUp    *time.Time
	NextFollowUpSet bool
}

// Update applies the set fields to a lead. A status change additionally writes
// a status_change activity inside the same transaction, inserted before the
// status value itself is persisted, so no reader can observe the new status
// without the matching log entry already existing.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Lead, error) {
	setClauses := []string{}
	args := []any{}
	argIdx := 1

	if params.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *params.Notes)
		argIdx++
	}
	if params.Score != nil {
		setClauses = append(setClauses, fmt.Sprintf("score = $%d", argIdx))
		args = append(args, *params.Score)
		argIdx++
	}
	if params.TagsSet {
		tagsJSON, err := json.Marshal(emptyIfNil(params.Tags))
		if err != nil {
			return Lead{}, err
		}
		setClauses = append(setClauses, fmt.Sprintf("tags = $%d", argIdx))
		args = append(args, tagsJSON)
		argIdx++
	}
	if params.NextFollowUpSet {
		setClauses = append(setClauses, fmt.Sprintf("next_follow_up = $%d", argIdx))
		args = append(args, params.NextFollowUp)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d
		RETURNING`+leadSelectCols+`
	`, strings.Join(setClauses, ", "), argIdx)

	if params.Status == nil {
		lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return lead, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Lead{}, err
	}
	defer tx.Rollback(ctx)

	// The activity must exist before the new status value does.
	_, err = tx.Exec(ctx, `
		INSERT INTO activities (lead_id, kind, title, body)
		VALUES ($1, $2, $3, '')
	`, id, "status_change", fmt.Sprintf("Status → %s", *params.Status))
	if err != nil {
		// The insert hits the lead_id foreign key before the UPDATE gets a
		// chance to report zero rows, so surface the same not-found error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}

	lead, err := scanLead(tx.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Lead{}, err
	}

	return lead, nil
}

type ListByStatusParams struct {
	Status domain.Status
	Offset int
	Limit  int
}

// ListByStatus returns a page of leads in the given status joined with their
// practice, ordered by practice name, plus the total count for that status.
func (r *Repository) ListByStatus(ctx context.Context, params ListByStatusParams) ([]LeadWithPractice, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE status = $1`, params.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.practice_id, l.status, l.score, l.notes, l.tags, l.next_follow_up, l.created_at, l.updated_at,
			p.name, p.email, p.contact, p.website, p.address, p.staff
		FROM leads l
		JOIN practices p ON p.id = l.practice_id
		WHERE l.status = $1
		ORDER BY p.name ASC
		LIMIT $2 OFFSET $3
	`, params.Status, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]LeadWithPractice, 0)
	for rows.Next() {
		var item LeadWithPractice
		var rawTags []byte
		if err := rows.Scan(
			&item.ID, &item.PracticeID, &item.Status, &item.Score, &item.Notes,
			&rawTags, &item.NextFollowUp, &item.CreatedAt, &item.UpdatedAt,
			&item.PracticeName, &item.PracticeEmail, &item.PracticeContact,
			&item.PracticeWebsite, &item.PracticeAddress, &item.PracticeStaff,
		); err != nil {
			return nil, 0, err
		}
		if len(rawTags) > 0 {
			_ = json.Unmarshal(rawTags, &item.Tags)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// LeadWithPractice is a lead row joined with the practice contact fields the
// dashboard list views render.
type LeadWithPractice struct {
	Lead
	PracticeName    string
	PracticeEmail   *string
	PracticeContact *string
	PracticeWebsite *string
	PracticeAddress *string
	PracticeStaff   *string
}

// CountByStatus returns lead counts keyed by status. Every known pipeline
// status is present in the result, zero-filled.
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int, len(domain.Statuses()))
	for _, s := range domain.Statuses() {
		counts[s] = 0
	}
	for rows.Next() {
		var status domain.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, known := counts[status]; known {
			counts[status] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// GetWithPractice returns one lead joined with its practice contact fields.
func (r *Repository) GetWithPractice(ctx context.Context, id uuid.UUID) (LeadWithPractice, error) {
	var item LeadWithPractice
	var rawTags []byte
	err := r.pool.QueryRow(ctx, `
		SELECT l.id, l.practice_id, l.status, l.score, l.notes, l.tags, l.next_follow_up, l.created_at, l.updated_at,
			p.name, p.email, p.contact, p.website, p.address, p.staff
		FROM leads l
		JOIN practices p ON p.id = l.practice_id
		WHERE l.id = $1
	`, id).Scan(
		&item.ID, &item.PracticeID, &item.Status, &item.Score, &item.Notes,
		&rawTags, &item.NextFollowUp, &item.CreatedAt, &item.UpdatedAt,
		&item.PracticeName, &item.PracticeEmail, &item.PracticeContact,
		&item.PracticeWebsite, &item.PracticeAddress, &item.PracticeStaff,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadWithPractice{}, ErrNotFound
	}
	if err != nil {
		return LeadWithPractice{}, err
	}
	if len(rawTags) > 0 {
		_ = json.Unmarshal(rawTags, &item.Tags)
	}
	return item, nil
}
