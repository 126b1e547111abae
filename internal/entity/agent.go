package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type AgentStatus string

const (
	AgentStatusReady  AgentStatus = "ready"
	AgentStatusActive AgentStatus = "active"
	AgentStatusIdle   AgentStatus = "idle"
	AgentStatusError  AgentStatus = "error"
)

func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusReady, AgentStatusActive, AgentStatusIdle, AgentStatusError:
		return true
	}
	return false
}

// Agent is a named logical actor that activities and tasks are attributed
// to. It is not a running process.
type Agent struct {
	ID          string      `json:"id"`
	AgentID     string      `json:"agent_id"`
	Name        string      `json:"name"`
	Model       string      `json:"model"`
	Status      AgentStatus `json:"status"`
	CurrentTask string      `json:"current_task,omitempty"`
	LastActive  *time.Time  `json:"last_active,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Populated by list queries only.
	TaskCount     int `json:"task_count"`
	ActivityCount int `json:"activity_count"`
}

func NewAgent(agentID, name, model string, status AgentStatus) (*Agent, error) {
	if status == "" {
		status = AgentStatusReady
	}

	agent := &Agent{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Name:      name,
		Model:     model,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := agent.Validate(); err != nil {
		return nil, err
	}

	return agent, nil
}

func (a *Agent) Validate() error {
	if a.AgentID == "" {
		return errors.New("agent id is required")
	}
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.Model == "" {
		return errors.New("model is required")
	}
	if !a.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

type AgentRepository interface {
	// List returns agents ordered by name with task/activity counts filled in.
	List(ctx context.Context) ([]*Agent, error)
	FindByID(ctx context.Context, id string) (*Agent, error)
	FindByAgentID(ctx context.Context, agentID string) (*Agent, error)
	Create(ctx context.Context, agent *Agent) error
	Update(ctx context.Context, agent *Agent) error
	// Delete removes the agent together with its tasks and activities.
	Delete(ctx context.Context, id string) error
	TouchLastActive(ctx context.Context, agentID string) error
}
