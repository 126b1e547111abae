package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activity is an immutable audit entry. It is never updated; deletion only
// happens through bulk purge or when its lead is removed.
type Activity struct {
	ID          string    `json:"id"`
	AgentID     string    `json:"agent_id"`
	AgentName   string    `json:"agent_name,omitempty"` // joined on list
	LeadID      string    `json:"lead_id,omitempty"`    // set for lead-scoped actions
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Metadata    string    `json:"metadata,omitempty"` // opaque JSON blob, no parsing guarantees
	CreatedAt   time.Time `json:"created_at"`
}

func NewActivity(agentID, action, description string) (*Activity, error) {
	act := &Activity{
		ID:          uuid.New().String(),
		AgentID:     agentID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := act.Validate(); err != nil {
		return nil, err
	}

	return act, nil
}

func (a *Activity) Validate() error {
	if a.AgentID == "" {
		return errors.New("agent id is required")
	}
	if a.Action == "" {
		return errors.New("action is required")
	}
	if a.Description == "" {
		return errors.New("description is required")
	}
	return nil
}

type ListActivitiesOptions struct {
	AgentID string
	Limit   int
}

type ActivityRepository interface {
	Create(ctx context.Context, act *Activity) error
	List(ctx context.Context, opts ListActivitiesOptions) ([]*Activity, error)
	// Purge deletes all activities, optionally scoped to one agent.
	// Returns the number of rows removed.
	Purge(ctx context.Context, agentID string) (int64, error)
}
