package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

const messageColumns = `id, lead_id, direction, from_addr, to_addr, subject, body, status, created_at, updated_at`

func (r *MessageRepository) Create(ctx context.Context, msg *entity.LeadMessage) error {
	query := `
		INSERT INTO lead_messages (id, lead_id, direction, from_addr, to_addr, subject, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		msg.ID,
		msg.LeadID,
		msg.Direction,
		msg.From,
		msg.To,
		nullString(msg.Subject),
		msg.Body,
		msg.Status,
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, leadID, msgID string) (*entity.LeadMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM lead_messages WHERE id = $1 AND lead_id = $2`

	msg, err := scanMessage(r.DB.QueryRowContext(ctx, query, msgID, leadID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrMessageNotFound
		}
		return nil, err
	}

	return msg, nil
}

func (r *MessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM lead_messages WHERE lead_id = $1 ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*entity.LeadMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}

func (r *MessageRepository) UpdateDraft(ctx context.Context, msgID, subject, body string) (bool, error) {
	query := `
		UPDATE lead_messages SET subject = $2, body = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	res, err := r.DB.ExecContext(ctx, query, msgID, nullString(subject), body, entity.MessageStatusDraft)
	if err != nil {
		return false, fmt.Errorf("failed to update message: %w", err)
	}

	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *MessageRepository) Approve(ctx context.Context, msgID string) (bool, error) {
	query := `
		UPDATE lead_messages SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	res, err := r.DB.ExecContext(ctx, query, msgID, entity.MessageStatusApproved, entity.MessageStatusDraft)
	if err != nil {
		return false, fmt.Errorf("failed to approve message: %w", err)
	}

	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *MessageRepository) MarkThreadRead(ctx context.Context, leadID string) (int64, error) {
	query := `
		UPDATE lead_messages SET status = $2, updated_at = NOW()
		WHERE lead_id = $1 AND direction = $3 AND status = $4
	`

	res, err := r.DB.ExecContext(ctx, query, leadID, entity.MessageStatusRead, entity.DirectionInbound, entity.MessageStatusReceived)
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}

	return res.RowsAffected()
}

func scanMessage(s rowScanner) (*entity.LeadMessage, error) {
	var msg entity.LeadMessage
	var subject sql.NullString

	err := s.Scan(
		&msg.ID,
		&msg.LeadID,
		&msg.Direction,
		&msg.From,
		&msg.To,
		&subject,
		&msg.Body,
		&msg.Status,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	msg.Subject = subject.String
	return &msg, nil
}
