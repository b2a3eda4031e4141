package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blocarch_backend/internal/leads/domain"
)

// FeedItem is a lead joined with the practice contact fields the automation
// tool needs to render an outreach email.
type FeedItem struct {
	LeadID          uuid.UUID
	PracticeID      uuid.UUID
	Status          domain.Status
	PracticeName    string
	PracticeEmail   string
	PracticeContact *string
	PracticeWebsite *string
	PracticeAddress *string
}

type FeedParams struct {
	Status *domain.Status
	Limit  int
}

// ListForAutomation returns leads for the automation feed. Leads whose
// practice has no email are always excluded, and the order is by lead id
// ascending so repeated polls with the same filter are deterministic.
func (r *Repository) ListForAutomation(ctx context.Context, params FeedParams) ([]FeedItem, error) {
	where := "p.email IS NOT NULL AND p.email <> ''"
	args := []any{}
	argIdx := 1

	if params.Status != nil {
		where += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *params.Status)
		argIdx++
	}
	args = append(args, params.Limit)

	query := fmt.Sprintf(`
		SELECT l.id, l.practice_id, l.status, p.name, p.email, p.contact, p.website, p.address
		FROM leads l
		JOIN practices p ON p.id = l.practice_id
		WHERE %s
		ORDER BY l.id ASC
		LIMIT $%d
	`, where, argIdx)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]FeedItem, 0)
	for rows.Next() {
		var item FeedItem
		if err := rows.Scan(
			&item.LeadID, &item.PracticeID, &item.Status, &item.PracticeName,
			&item.PracticeEmail, &item.PracticeContact, &item.PracticeWebsite, &item.PracticeAddress,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
