package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(ctx context.Context, act *entity.Activity) error {
	query := `
		INSERT INTO activities (id, agent_id, lead_id, action, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		act.ID,
		act.AgentID,
		nullString(act.LeadID),
		act.Action,
		act.Description,
		nullString(act.Metadata),
		act.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

func (r *ActivityRepository) List(ctx context.Context, opts entity.ListActivitiesOptions) ([]*entity.Activity, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ac.id, ac.agent_id, a.name, ac.lead_id, ac.action, ac.description, ac.metadata, ac.created_at
		FROM activities ac
		JOIN agents a ON a.agent_id = ac.agent_id
		WHERE ($1 = '' OR ac.agent_id = $1)
		ORDER BY ac.created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, opts.AgentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var acts []*entity.Activity
	for rows.Next() {
		var act entity.Activity
		var leadID, metadata sql.NullString

		err := rows.Scan(&act.ID, &act.AgentID, &act.AgentName, &leadID, &act.Action, &act.Description, &metadata, &act.CreatedAt)
		if err != nil {
			return nil, err
		}

		act.LeadID = leadID.String
		act.Metadata = metadata.String
		acts = append(acts, &act)
	}

	return acts, rows.Err()
}

func (r *ActivityRepository) Purge(ctx context.Context, agentID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM activities WHERE ($1 = '' OR agent_id = $1)`, agentID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activities: %w", err)
	}

	return res.RowsAffected()
}
