package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only log entry owned by a lead. Activities are never
// updated or deleted; the write surface is insert-only.
type Activity struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Kind      string
	Title     string
	Body      string
	Metadata  map[string]any
	CreatedAt time.Time
}

type AddActivityParams struct {
	LeadID   uuid.UUID
	Kind     string
	Title    string
	Body     string
	Metadata map[string]any
}

func (r *Repository) AddActivity(ctx context.Context, params AddActivityParams) (Activity, error) {
	metadataJSON, err := json.Marshal(params.Metadata)
	if err != nil {
		return Activity{}, err
	}

	var activity Activity
	// metadata is excluded from RETURNING: we already hold params.Metadata as
	// a Go value and re-scanning the stored JSONB would just add a redundant
	// json.Unmarshal on every insert.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO activities (lead_id, kind, title, body, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lead_id, kind, title, body, created_at
	`, params.LeadID, params.Kind, params.Title, params.Body, metadataJSON).Scan(
		&activity.ID, &activity.LeadID, &activity.Kind, &activity.Title, &activity.Body, &activity.CreatedAt,
	)
	if err != nil {
		return Activity{}, err
	}
	activity.Metadata = params.Metadata

	return activity, nil
}

// ListActivities returns the most recent activities for a lead, newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, kind, title, body, metadata, created_at
		FROM activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, leadID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Activity, 0)
	for rows.Next() {
		var activity Activity
		var rawMetadata []byte
		if err := rows.Scan(
			&activity.ID, &activity.LeadID, &activity.Kind, &activity.Title,
			&activity.Body, &rawMetadata, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawMetadata) > 0 {
			_ = json.Unmarshal(rawMetadata, &activity.Metadata)
		}
		items = append(items, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
