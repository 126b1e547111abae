package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type EmailLogRepository struct {
	DB *sql.DB
}

func NewEmailLogRepository(db *sql.DB) *EmailLogRepository {
	return &EmailLogRepository{DB: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, entry *entity.EmailLog) error {
	query := `
		INSERT INTO email_logs (id, lead_id, direction, recipient, subject, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.LeadID,
		entry.Direction,
		entry.Recipient,
		entry.Subject,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create email log: %w", err)
	}

	return nil
}

func (r *EmailLogRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.EmailLog, error) {
	query := `
		SELECT id, lead_id, direction, recipient, subject, status, created_at
		FROM email_logs WHERE lead_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.EmailLog
	for rows.Next() {
		var e entity.EmailLog
		err := rows.Scan(&e.ID, &e.LeadID, &e.Direction, &e.Recipient, &e.Subject, &e.Status, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &e)
	}

	return logs, rows.Err()
}
