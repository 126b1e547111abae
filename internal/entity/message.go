package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// MessageStatus covers both sub-lifecycles: outbound messages run
// draft -> approved -> sent, inbound messages run received -> read.
type MessageStatus string

const (
	MessageStatusDraft    MessageStatus = "draft"
	MessageStatusApproved MessageStatus = "approved"
	MessageStatusSent     MessageStatus = "sent"
	MessageStatusReceived MessageStatus = "received"
	MessageStatusRead     MessageStatus = "read"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusDraft, MessageStatusApproved, MessageStatusSent, MessageStatusReceived, MessageStatusRead:
		return true
	}
	return false
}

type LeadMessage struct {
	ID        string        `json:"id"`
	LeadID    string        `json:"lead_id"`
	Direction Direction     `json:"direction"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Subject   string        `json:"subject,omitempty"`
	Body      string        `json:"body"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewLeadMessage(leadID string, direction Direction, from, to, subject, body string) (*LeadMessage, error) {
	status := MessageStatusDraft
	if direction == DirectionInbound {
		status = MessageStatusReceived
	}

	msg := &LeadMessage{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Direction: direction,
		From:      from,
		To:        to,
		Subject:   subject,
		Body:      body,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

func (m *LeadMessage) Validate() error {
	if m.LeadID == "" {
		return errors.New("lead id is required")
	}
	if !m.Direction.Valid() {
		return errors.New("direction must be inbound or outbound")
	}
	if m.From == "" || m.To == "" {
		return errors.New("from and to are required")
	}
	if m.Body == "" {
		return errors.New("body is required")
	}
	return nil
}

type MessageRepository interface {
	Create(ctx context.Context, msg *LeadMessage) error
	// FindByID resolves a message scoped to its lead.
	FindByID(ctx context.Context, leadID, msgID string) (*LeadMessage, error)
	// ListByLead returns the thread in chronological order (oldest first).
	ListByLead(ctx context.Context, leadID string) ([]*LeadMessage, error)
	// UpdateDraft overwrites subject/body while the message is still a
	// draft; returns false when it no longer is.
	UpdateDraft(ctx context.Context, msgID, subject, body string) (bool, error)
	// Approve moves a draft to approved; returns false when the message is
	// not a draft anymore.
	Approve(ctx context.Context, msgID string) (bool, error)
	// MarkThreadRead flips every received inbound message of the lead to
	// read and returns the number of rows affected.
	MarkThreadRead(ctx context.Context, leadID string) (int64, error)
}
