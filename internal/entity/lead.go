package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the closed set of pipeline states. A lead only ever
// advances NEW -> DEMO_READY -> EMAIL_DRAFT -> APPROVED -> SENT.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusDemoReady  LeadStatus = "DEMO_READY"
	LeadStatusEmailDraft LeadStatus = "EMAIL_DRAFT"
	LeadStatusApproved   LeadStatus = "APPROVED"
	LeadStatusSent       LeadStatus = "SENT"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusDemoReady, LeadStatusEmailDraft, LeadStatusApproved, LeadStatusSent:
		return true
	}
	return false
}

// CanAdvanceTo matches exhaustively over the source state. Anything not
// listed is an invalid transition.
func (s LeadStatus) CanAdvanceTo(next LeadStatus) bool {
	switch s {
	case LeadStatusNew:
		return next == LeadStatusDemoReady
	case LeadStatusDemoReady:
		return next == LeadStatusEmailDraft
	case LeadStatusEmailDraft:
		return next == LeadStatusApproved
	case LeadStatusApproved:
		return next == LeadStatusSent
	}
	return false
}

type Lead struct {
	ID           string     `json:"id"`
	LeadID       string     `json:"lead_id"` // L-<year>-<seq>, assigned at creation
	Company      string     `json:"company"`
	ContactName  string     `json:"contact_name,omitempty"`
	Address      string     `json:"address,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	WebsiteURL   string     `json:"website_url,omitempty"`
	Description  string     `json:"description,omitempty"`
	Industry     string     `json:"industry,omitempty"`
	Source       string     `json:"source,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	Status       LeadStatus `json:"status"`
	DemoURL      string     `json:"demo_url,omitempty"`
	EmailSubject string     `json:"email_subject,omitempty"`
	EmailBody    string     `json:"email_body,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Populated by list queries only.
	UnreadCount int        `json:"unread_count"`
	LastReplyAt *time.Time `json:"last_reply_at,omitempty"`
}

func NewLead(company string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Company:   company,
		Status:    LeadStatusNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Company == "" {
		return errors.New("company is required")
	}
	if !l.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

type StatusCount struct {
	Status LeadStatus `json:"status"`
	Count  int        `json:"count"`
}

type ListLeadsOptions struct {
	Status LeadStatus
	Limit  int
}

type LeadRepository interface {
	// Create assigns a race-safe LeadID (L-<year>-<seq>) and persists the lead.
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	// List puts leads with an unread inbound reply first (most recent reply
	// descending), the rest by updated_at descending.
	List(ctx context.Context, opts ListLeadsOptions) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	// Delete removes the lead together with its messages, email logs and
	// lead-scoped activities.
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// Conditional transitions. Each returns false when the lead is no longer
	// in the required source state (lost race or manual change).
	AdvanceToDemoReady(ctx context.Context, id, demoURL string) (bool, error)
	AdvanceToEmailDraft(ctx context.Context, id, subject, body string) (bool, error)
	UpdateDraft(ctx context.Context, id, email, subject, body string) (bool, error)
	Approve(ctx context.Context, id string) (bool, error)
}
