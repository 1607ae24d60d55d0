package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTask creates a background scoring-task row and returns its ID.
func (db *DB) CreateTask(ctx context.Context, status string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO tasks (status) VALUES ($1) RETURNING id`,
		status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task: %w", err)
	}
	return id, nil
}

// UpdateTaskStatus records a status transition for a scoring task.
func (db *DB) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

// GetTask retrieves a scoring task by ID. Returns (nil, nil) when no row exists.
func (db *DB) GetTask(ctx context.Context, taskID uuid.UUID) (*Task, error) {
	var task Task
	err := db.pool.QueryRow(ctx,
		`SELECT id, status, created_at, updated_at FROM tasks WHERE id = $1`,
		taskID,
	).Scan(&task.ID, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}
