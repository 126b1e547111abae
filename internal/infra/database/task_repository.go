package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	year := task.CreatedAt.Year()
	seq, err := nextSequence(ctx, tx, "task", year)
	if err != nil {
		return err
	}
	task.TaskID = fmt.Sprintf("T-%d-%03d", year, seq)

	query := `
		INSERT INTO tasks (id, task_id, agent_id, title, description, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(ctx, query,
		task.ID,
		task.TaskID,
		task.AgentID,
		task.Title,
		nullString(task.Description),
		task.Priority,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return tx.Commit()
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `
		SELECT t.id, t.task_id, t.agent_id, '', t.title, t.description, t.priority,
			t.status, t.result, t.started_at, t.completed_at, t.created_at, t.updated_at
		FROM tasks t WHERE t.id = $1
	`

	task, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, opts entity.ListTasksOptions) ([]*entity.Task, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT t.id, t.task_id, t.agent_id, a.name, t.title, t.description, t.priority,
			t.status, t.result, t.started_at, t.completed_at, t.created_at, t.updated_at
		FROM tasks t
		JOIN agents a ON a.agent_id = t.agent_id
		WHERE ($1 = '' OR t.status = $1)
		  AND ($2 = '' OR t.agent_id = $2)
		ORDER BY t.created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, string(opts.Status), opts.AgentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status entity.TaskStatus, result *string) error {
	query := `
		UPDATE tasks SET
			status = $2,
			result = COALESCE($3, result),
			started_at = CASE WHEN $2 = 'active' THEN NOW() ELSE started_at END,
			completed_at = CASE WHEN $2 IN ('done', 'failed') THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, status, result)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTaskNotFound
	}

	return nil
}

func scanTask(s rowScanner) (*entity.Task, error) {
	var task entity.Task
	var description, result sql.NullString
	var startedAt, completedAt sql.NullTime

	err := s.Scan(
		&task.ID, &task.TaskID, &task.AgentID, &task.AgentName, &task.Title,
		&description, &task.Priority, &task.Status, &result, &startedAt,
		&completedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Result = result.String
	if startedAt.Valid {
		t := startedAt.Time
		task.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	return &task, nil
}
