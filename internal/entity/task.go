package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusActive  TaskStatus = "active"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusFailed  TaskStatus = "failed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusActive, TaskStatusDone, TaskStatusFailed:
		return true
	}
	return false
}

type Task struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"` // T-<year>-<seq>
	AgentID     string     `json:"agent_id"`
	AgentName   string     `json:"agent_name,omitempty"` // joined on list
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      TaskStatus `json:"status"`
	Result      string     `json:"result,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTask(agentID, title, description, priority string) (*Task, error) {
	if priority == "" {
		priority = "normal"
	}

	task := &Task{
		ID:          uuid.New().String(),
		AgentID:     agentID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

func (t *Task) Validate() error {
	if t.AgentID == "" {
		return errors.New("agent id is required")
	}
	if t.Title == "" {
		return errors.New("title is required")
	}
	if !t.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

type ListTasksOptions struct {
	Status  TaskStatus
	AgentID string
	Limit   int
}

type TaskRepository interface {
	// Create assigns a race-safe TaskID (T-<year>-<seq>) and persists the task.
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, opts ListTasksOptions) ([]*Task, error)
	// UpdateStatus stamps started_at on active and completed_at on done/failed.
	UpdateStatus(ctx context.Context, id string, status TaskStatus, result *string) error
	Delete(ctx context.Context, id string) error
}
