package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TWRT/equipeapp/internal/models"
)

type TaskRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used for created_at and updated_at.
func (r *TaskRepository) WithClock(now func() time.Time) *TaskRepository {
	r.now = now
	return r
}

func (r *TaskRepository) Create(ctx context.Context, task models.NewTask) (int64, error) {
	if strings.TrimSpace(task.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if !task.Priority.Valid() {
		return 0, fmt.Errorf("%w: invalid priority %q", models.ErrValidation, task.Priority)
	}

	query := `
	INSERT INTO tasks (title, description, assignee, priority, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := r.now().UTC().Format(timeLayout)
	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Assignee,
		task.Priority,
		models.StatusNew,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}

	return result.LastInsertId()
}

// UpdateStatus fails with ErrNotFound when no task has the given id.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status %q", models.ErrValidation, status)
	}

	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, r.now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task status rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: task %d", models.ErrNotFound, id)
	}
	return nil
}

const selectTaskColumns = `
	SELECT id, title, description, assignee, priority, status, created_at, updated_at
	FROM tasks
`

func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTaskColumns+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTaskColumns+` WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("%w: task %d", models.ErrNotFound, id)
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (models.Task, error) {
	var (
		t                    models.Task
		description, assign  sql.NullString
		priority, status     sql.NullString
		createdAt, updatedAt sql.NullString
	)

	err := s.Scan(
		&t.ID,
		&t.Title,
		&description,
		&assign,
		&priority,
		&status,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, err
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}

	t.Description = description.String
	t.Assignee = assign.String
	t.Priority = models.Priority(priority.String)
	t.Status = models.Status(status.String)

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Task{}, fmt.Errorf("scan task %d created_at: %w", t.ID, err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Task{}, fmt.Errorf("scan task %d updated_at: %w", t.ID, err)
	}

	return t, nil
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(timeLayout, s.String, time.UTC)
}
