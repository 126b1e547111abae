package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailLog records the intent to send; actual transport is handled by an
// external channel.
type EmailLog struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"` // external L-<year>-<seq> id
	Direction string    `json:"direction"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEmailLog(leadID, direction, recipient, subject, status string) *EmailLog {
	return &EmailLog{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Direction: direction,
		Recipient: recipient,
		Subject:   subject,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

type EmailLogRepository interface {
	Create(ctx context.Context, entry *EmailLog) error
	ListByLead(ctx context.Context, leadID string) ([]*EmailLog, error)
}
