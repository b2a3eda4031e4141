// Package repository provides data access for automation rules.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"blocarch_backend/platform/db"
)

type Repository struct {
	pool db.Pool
}

func New(pool db.Pool) *Repository {
	return &Repository{pool: pool}
}

// Rule is a declarative outreach rule: which segment of leads it targets and
// which action an external automation tool should take. Rules are data only;
// nothing in this service executes them.
type Rule struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Segment      map[string]any
	Action       string
	ActionParams map[string]any
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// List returns all rules, newest first.
func (r *Repository) List(ctx context.Context) ([]Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, segment, action, action_params, is_active, created_at, updated_at
		FROM automation_rules
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]Rule, 0)
	for rows.Next() {
		var rule Rule
		var rawSegment, rawParams []byte
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Description, &rawSegment, &rule.Action,
			&rawParams, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawSegment) > 0 {
			_ = json.Unmarshal(rawSegment, &rule.Segment)
		}
		if len(rawParams) > 0 {
			_ = json.Unmarshal(rawParams, &rule.ActionParams)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
