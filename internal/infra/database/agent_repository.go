package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/partpeople/lead-portal/internal/entity"
)

type AgentRepository struct {
	DB *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

const agentColumns = `id, agent_id, name, model, status, current_task, last_active, created_at, updated_at`

func (r *AgentRepository) List(ctx context.Context) ([]*entity.Agent, error) {
	query := `
		SELECT a.id, a.agent_id, a.name, a.model, a.status, a.current_task,
			a.last_active, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM tasks t WHERE t.agent_id = a.agent_id),
			(SELECT COUNT(*) FROM activities ac WHERE ac.agent_id = a.agent_id)
		FROM agents a
		ORDER BY a.name ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*entity.Agent
	for rows.Next() {
		agent, err := scanAgent(rows, true)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}

	return agents, rows.Err()
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *AgentRepository) FindByAgentID(ctx context.Context, agentID string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE agent_id = $1`
	return r.findOne(ctx, query, agentID)
}

func (r *AgentRepository) findOne(ctx context.Context, query, arg string) (*entity.Agent, error) {
	agent, err := scanAgent(r.DB.QueryRowContext(ctx, query, arg), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAgentNotFound
		}
		return nil, err
	}
	return agent, nil
}

func (r *AgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	query := `
		INSERT INTO agents (id, agent_id, name, model, status, current_task, last_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		agent.ID,
		agent.AgentID,
		agent.Name,
		agent.Model,
		agent.Status,
		nullString(agent.CurrentTask),
		agent.LastActive,
		agent.CreatedAt,
		agent.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrAgentExists
		}
		return fmt.Errorf("failed to create agent: %w", err)
	}

	return nil
}

func (r *AgentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	query := `
		UPDATE agents SET name = $2, model = $3, status = $4, current_task = $5,
			last_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		agent.ID,
		agent.Name,
		agent.Model,
		agent.Status,
		nullString(agent.CurrentTask),
		agent.LastActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAgentNotFound
	}

	return nil
}

func (r *AgentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var agentID string
	err = tx.QueryRowContext(ctx, `SELECT agent_id FROM agents WHERE id = $1`, id).Scan(&agentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrAgentNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE agent_id = $1`, agentID); err != nil {
		return fmt.Errorf("failed to delete agent tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE agent_id = $1`, agentID); err != nil {
		return fmt.Errorf("failed to delete agent activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}

	return tx.Commit()
}

func (r *AgentRepository) TouchLastActive(ctx context.Context, agentID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE agents SET last_active = NOW(), updated_at = NOW() WHERE agent_id = $1`, agentID)
	return err
}

func scanAgent(s rowScanner, withCounts bool) (*entity.Agent, error) {
	var agent entity.Agent
	var currentTask sql.NullString
	var lastActive sql.NullTime

	dest := []any{
		&agent.ID, &agent.AgentID, &agent.Name, &agent.Model, &agent.Status,
		&currentTask, &lastActive, &agent.CreatedAt, &agent.UpdatedAt,
	}
	if withCounts {
		dest = append(dest, &agent.TaskCount, &agent.ActivityCount)
	}

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	agent.CurrentTask = currentTask.String
	if lastActive.Valid {
		t := lastActive.Time
		agent.LastActive = &t
	}

	return &agent, nil
}
